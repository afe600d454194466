package course

import (
	"testing"
	"time"
)

func TestLocked(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		releaseAt time.Time
		want      bool
	}{
		{name: "released in the past", releaseAt: now.Add(-time.Hour), want: false},
		{name: "releasing exactly now", releaseAt: now, want: false},
		{name: "releasing in a nanosecond", releaseAt: now.Add(time.Nanosecond), want: true},
		{name: "releasing in the future", releaseAt: now.Add(24 * time.Hour), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locked(Lesson{ReleaseAt: tt.releaseAt}, now); got != tt.want {
				t.Errorf("Locked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{name: "empty course", total: 0, completed: 0, want: 0},
		{name: "nothing completed", total: 5, completed: 0, want: 0},
		{name: "2 of 5", total: 5, completed: 2, want: 40},
		{name: "1 of 3 rounds down", total: 3, completed: 1, want: 33},
		{name: "2 of 3 rounds up", total: 3, completed: 2, want: 67},
		{name: "1 of 2 rounds half up", total: 2, completed: 1, want: 50},
		{name: "all completed", total: 7, completed: 7, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.total, tt.completed); got != tt.want {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}
