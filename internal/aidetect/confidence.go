package aidetect

import (
	"math"

	"ai_text_analyzer/internal/textstat"
)

type Level string

const (
	VeryLow Level = "Very Low"
	Low     Level = "Low"
	Medium  Level = "Medium"
	High    Level = "High"
)

func (l Level) upgrade() Level {
	switch l {
	case VeryLow:
		return Low
	case Low:
		return Medium
	default:
		return High
	}
}

type Confidence struct {
	Score float64 `json:"score" yaml:"score"`
	Level Level   `json:"level" yaml:"level"`
}

// EstimateConfidence scales the distance of score from 50 by a multiplier
// that grows with input length. A skipped paragraph analysis overrides the
// length tiers with a heavy penalty and pins the level to Very Low.
func EstimateConfidence(score float64, words int, paragraphsSkipped bool) Confidence {
	d := math.Abs(score - 50)
	var c float64
	var level Level
	switch {
	case paragraphsSkipped:
		c, level = math.Max(0, d*0.5-15), VeryLow
	case words < 150:
		c, level = d*1.0-10, VeryLow
	case words < 500:
		c, level = d*1.5-5, Low
	default:
		c, level = d*2.0, Medium
	}
	if d > 40 && !paragraphsSkipped {
		c += 10
		level = level.upgrade()
	}
	return Confidence{Score: textstat.Clamp(c, 0, 100), Level: level}
}

type Verdict string

const (
	VerdictAI    Verdict = "Likely AI-Generated (Based on Heuristics)"
	VerdictHuman Verdict = "Likely Human-Written (Based on Heuristics)"
	VerdictMixed Verdict = "Mixed Signals / Inconclusive"
)

// VerdictFor maps the overall score to its banner. The cut points are 65 and 35.
func VerdictFor(score float64) Verdict {
	switch {
	case score > 65:
		return VerdictAI
	case score < 35:
		return VerdictHuman
	default:
		return VerdictMixed
	}
}
