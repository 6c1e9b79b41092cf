// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

// Package cherr is the structured error channel shared by packages layout
// and hdl. It is modeled on the accumulate-then-report shape of the
// retrieval pack's mtail compiler (vm/codegen.go's errorf + ErrorList):
// a pass can collect several LayoutErrors into an ErrorList rather than
// failing on the first one, then return the list as a single error if it
// is non-empty. Package layout does this only for duplicate sibling names
// within one composite; every other layout error is returned on its own.
package cherr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind tags the taxonomy of layout- and synthesis-phase errors (spec §7).
type Kind int

const (
	MissingName Kind = iota
	DuplicateName
	UnalignedAddress
	BadRegisterWidth
	MissingAccess
	BadAccess
	TypeAndFields
	BadType
	MissingFieldRange
	BadFieldRange
	FieldOverflow
	FieldOverlap
	BadPreset
	EmptyComposite
	MissingRepeatCount
	NodeOverlap
	UnknownBus
	StructuralInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case MissingName:
		return "MissingName"
	case DuplicateName:
		return "DuplicateName"
	case UnalignedAddress:
		return "UnalignedAddress"
	case BadRegisterWidth:
		return "BadRegisterWidth"
	case MissingAccess:
		return "MissingAccess"
	case BadAccess:
		return "BadAccess"
	case TypeAndFields:
		return "TypeAndFields"
	case BadType:
		return "BadType"
	case MissingFieldRange:
		return "MissingFieldRange"
	case BadFieldRange:
		return "BadFieldRange"
	case FieldOverflow:
		return "FieldOverflow"
	case FieldOverlap:
		return "FieldOverlap"
	case BadPreset:
		return "BadPreset"
	case EmptyComposite:
		return "EmptyComposite"
	case MissingRepeatCount:
		return "MissingRepeatCount"
	case NodeOverlap:
		return "NodeOverlap"
	case UnknownBus:
		return "UnknownBus"
	case StructuralInvariantViolation:
		return "StructuralInvariantViolation"
	default:
		return "Unknown"
	}
}

// LayoutError is a single, path-carrying compilation error (spec §6.3).
type LayoutError struct {
	Kind    Kind
	Message string
	Path    string
	Cause   error
}

func (e *LayoutError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *LayoutError) Unwrap() error { return e.Cause }

// New builds a LayoutError for the given path.
func New(kind Kind, path, format string, args ...any) *LayoutError {
	return &LayoutError{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a LayoutError carrying an underlying cause, wrapped with
// github.com/pkg/errors so the original stack is still inspectable.
func Wrap(cause error, kind Kind, path, format string, args ...any) *LayoutError {
	return &LayoutError{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Cause:   errors.WithStack(cause),
	}
}

// ErrorList accumulates LayoutErrors across a pass. The zero value is
// ready to use. A nil or empty *ErrorList is not an error (callers check
// len(*list) == 0, or use AsError).
type ErrorList []*LayoutError

// Add appends a LayoutError built from kind/path/format/args.
func (l *ErrorList) Add(kind Kind, path, format string, args ...any) {
	*l = append(*l, New(kind, path, format, args...))
}

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// AsError returns nil if the list is empty, else the list itself as an
// error (so callers can `return errs.AsError()` unconditionally).
func (l ErrorList) AsError() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Collector is a small stateful wrapper around ErrorList, the Go
// equivalent of the mtail codegen visitor's errorf-accumulating style: a
// pass that would otherwise bail out on the first bad sibling instead
// records every one of them and reports them together.
type Collector struct {
	errs ErrorList
}

// Errorf appends a new LayoutError built from kind/path/format/args.
func (c *Collector) Errorf(path string, kind Kind, format string, args ...any) {
	c.errs.Add(kind, path, format, args...)
}

// Wrap appends a LayoutError that wraps cause.
func (c *Collector) Wrap(cause error, kind Kind, path, format string, args ...any) {
	c.errs = append(c.errs, Wrap(cause, kind, path, format, args...))
}

// Err returns nil if nothing was collected, else the accumulated errors as
// a single error.
func (c *Collector) Err() error { return c.errs.AsError() }
