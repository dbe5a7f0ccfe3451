package domain

import "testing"

func TestNormalizeMetricKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "weight", "weight"},
		{"surrounding spaces", "  reps ", "reps"},
		{"case preserved", "RPE", "RPE"},
		{"inner spaces kept", "rest time", "rest time"},
		{"only spaces", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMetricKey(tt.in); got != tt.want {
				t.Errorf("NormalizeMetricKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExerciseName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Squats", "Squats"},
		{"surrounding spaces", "  Bench Press ", "Bench Press"},
		{"compressed spaces", "Bench    Press", "Bench Press"},
		{"case preserved", "OHP", "OHP"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeExerciseName(tt.in); got != tt.want {
				t.Errorf("NormalizeExerciseName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
