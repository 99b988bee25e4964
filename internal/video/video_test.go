package video

import (
	"math"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"60/1", 60, false},
		{"30000/1001", 29.97, false},
		{"24000/1001", 23.976, false},
		{"25", 25, false},
		{" 50/1 ", 50, false},
		{"", 0, true},
		{"abc/1", 0, true},
		{"30/0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrameRate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFrameRate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrameRate(%q) failed: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf(
					"ParseFrameRate(%q) = %v, want %v",
					tt.input, got, tt.want,
				)
			}
		})
	}
}
