package aidetect

import (
	"math"
	"testing"
)

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		words   int
		skipped bool
		want    Confidence
	}{
		{"short neutral", 50, 100, false, Confidence{0, VeryLow}},
		{"short leaning", 70, 100, false, Confidence{10, VeryLow}},
		{"short extreme upgrades", 95, 100, false, Confidence{45, Low}},
		{"medium", 30, 300, false, Confidence{25, Low}},
		{"medium extreme upgrades", 5, 300, false, Confidence{72.5, Medium}},
		{"long", 70, 800, false, Confidence{40, Medium}},
		{"long extreme upgrades", 100, 800, false, Confidence{100, High}},
		{"skipped penalized", 80, 800, true, Confidence{0, VeryLow}},
		{"skipped extreme no bonus", 100, 800, true, Confidence{10, VeryLow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateConfidence(tt.score, tt.words, tt.skipped)
			if math.Abs(got.Score-tt.want.Score) > 1e-9 || got.Level != tt.want.Level {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestVerdictFor(t *testing.T) {
	cases := map[float64]Verdict{
		65.1: VerdictAI,
		65:   VerdictMixed,
		35:   VerdictMixed,
		34.9: VerdictHuman,
		0:    VerdictHuman,
		100:  VerdictAI,
	}
	for score, want := range cases {
		if got := VerdictFor(score); got != want {
			t.Fatalf("score %.1f: expected %q, got %q", score, want, got)
		}
	}
}

func TestRandomNoiseBounds(t *testing.T) {
	n := NewRandomNoise(42)
	for i := 0; i < 1000; i++ {
		j := n.Jitter(5)
		if j < -5 || j > 5 {
			t.Fatalf("jitter out of bounds: %.4f", j)
		}
	}
	if (NoNoise{}).Jitter(5) != 0 {
		t.Fatalf("expected no jitter")
	}
}
