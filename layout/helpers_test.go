// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package layout

import "testing"

func TestIlog2(t *testing.T) {
	cases := []struct {
		v    int
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1024, 10},
		{1025, 11},
	}
	for _, c := range cases {
		if got := Ilog2(c.v); got != c.want {
			t.Errorf("Ilog2(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestIlog2Domain(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Ilog2(0) did not panic")
		}
	}()
	Ilog2(0)
}

func TestRoundPow2(t *testing.T) {
	cases := []struct{ v, want int }{
		{1, 1}, {2, 2}, {3, 4}, {5, 8}, {9, 16}, {17, 32},
	}
	for _, c := range cases {
		if got := RoundPow2(c.v); got != c.want {
			t.Errorf("RoundPow2(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestAlign(t *testing.T) {
	cases := []struct{ n, mul, want int }{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{7, 8, 8},
		{8, 8, 8},
	}
	for _, c := range cases {
		if got := Align(c.n, c.mul); got != c.want {
			t.Errorf("Align(%d, %d) = %d, want %d", c.n, c.mul, got, c.want)
		}
	}
}

func TestIsPow2(t *testing.T) {
	yes := []int{1, 2, 4, 8, 1024}
	no := []int{0, 3, 5, 6, 9, -4}
	for _, v := range yes {
		if !IsPow2(v) {
			t.Errorf("IsPow2(%d) = false, want true", v)
		}
	}
	for _, v := range no {
		if IsPow2(v) {
			t.Errorf("IsPow2(%d) = true, want false", v)
		}
	}
}
