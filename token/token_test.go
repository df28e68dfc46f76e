package token

import "testing"

func TestWidthFor(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{16, 4},
		{17, 5},
	}
	for _, c := range cases {
		if got := WidthFor(c.n); got != c.want {
			t.Errorf("WidthFor(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestNeedsWidthBump(t *testing.T) {
	cases := []struct {
		next uint64
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{9, false},
		{16, true},
		{17, false},
	}
	for _, c := range cases {
		if got := NeedsWidthBump(c.next); got != c.want {
			t.Errorf("NeedsWidthBump(%d) = %v, want %v", c.next, got, c.want)
		}
	}
}
