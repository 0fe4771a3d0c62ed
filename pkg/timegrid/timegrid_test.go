package timegrid

import (
	"errors"
	"testing"
)

func TestToMinutes_Valid(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:00": 480,
		"09:30": 570,
		"13:05": 785,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ToMinutes(in)
		if err != nil {
			t.Errorf("ToMinutes(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ToMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestToMinutes_Invalid(t *testing.T) {
	for _, in := range []string{"", "8", "25:00", "10:60", "ab:cd", "10:00:00", "-1:30"} {
		if _, err := ToMinutes(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ToMinutes(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestFromMinutes_RoundTrip(t *testing.T) {
	for _, in := range []string{"00:00", "08:30", "12:00", "18:45", "23:59"} {
		m, err := ToMinutes(in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) error: %v", in, err)
		}
		if got := FromMinutes(m); got != in {
			t.Errorf("FromMinutes(ToMinutes(%q)) = %q, want %q", in, got, in)
		}
	}
}

func TestOverlaps(t *testing.T) {
	// Self-overlap for a non-degenerate interval.
	if !Overlaps(480, 540, 480, 540) {
		t.Errorf("Overlaps(self) = false, want true")
	}
	// Adjacent intervals do not overlap: [8:00,9:00) vs [9:00,10:00).
	if Overlaps(480, 540, 540, 600) {
		t.Errorf("Overlaps(adjacent) = true, want false")
	}
	// Partial intersection.
	if !Overlaps(690, 720, 680, 700) {
		t.Errorf("Overlaps(partial) = false, want true")
	}
	// Containment.
	if !Overlaps(480, 600, 500, 520) {
		t.Errorf("Overlaps(contained) = false, want true")
	}
	// Disjoint.
	if Overlaps(480, 500, 520, 540) {
		t.Errorf("Overlaps(disjoint) = true, want false")
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	pairs := [][4]int{
		{480, 540, 500, 560},
		{480, 540, 540, 600},
		{100, 200, 150, 160},
		{0, 1, 2, 3},
	}
	for _, p := range pairs {
		ab := Overlaps(p[0], p[1], p[2], p[3])
		ba := Overlaps(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("Overlaps%v = %v but swapped = %v, want symmetric", p, ab, ba)
		}
	}
}
