package service

import "testing"

func TestTotalDurationMinutes(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		want     int
	}{
		{"no services uses buffer only", nil, 30},
		{"single photo session", []string{"photo"}, 60},
		{"photo plus drone", []string{"photo", "drone_photo"}, 90},
		{"short video fits one slot", []string{"video_landscape"}, 30},
		{"unknown service gets default", []string{"matterport"}, 60},
		{"two videos", []string{"video_landscape", "video_portrait"}, 60},
	}

	for _, tt := range tests {
		if got := TotalDurationMinutes(tt.services); got != tt.want {
			t.Errorf("%s: TotalDurationMinutes(%v) = %d, want %d", tt.name, tt.services, got, tt.want)
		}
	}
}

func TestSlotGridWeekday(t *testing.T) {
	hours, closing, open := slotGridFor(monday)
	if !open {
		t.Fatal("expected Monday to be open")
	}
	if closing != 19*60 {
		t.Errorf("weekday closing = %d, want %d", closing, 19*60)
	}
	for _, h := range hours {
		if h == 12 {
			t.Error("weekday grid should not offer the 12:00 lunch hour")
		}
	}
	if len(hours) != 10 {
		t.Errorf("weekday grid has %d start hours, want 10", len(hours))
	}
}

func TestSlotGridSaturday(t *testing.T) {
	hours, closing, open := slotGridFor(saturday)
	if !open {
		t.Fatal("expected Saturday to be open")
	}
	if closing != 13*60 {
		t.Errorf("saturday closing = %d, want %d", closing, 13*60)
	}
	if len(hours) != 5 {
		t.Errorf("saturday grid has %d start hours, want 5", len(hours))
	}
}

func TestSlotGridSundayClosed(t *testing.T) {
	if _, _, open := slotGridFor(sunday); open {
		t.Error("expected Sunday to be closed")
	}
}
