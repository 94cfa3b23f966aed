package aidetect

import (
	"math"

	"ai_text_analyzer/internal/normalize"
	"ai_text_analyzer/internal/textstat"
	"ai_text_analyzer/internal/types"
)

type aggregation struct {
	Score         float64
	WeightApplied float64
	Fallback      bool
}

// aggregate combines result scores with their weights as
// 50 + (sum((score-50)*w) / sum(|w|)) * 50. The value is not clamped here;
// the caller clamps after jitter. Skipped and invalid results carry no
// weight. With no weight applied the plain mean of the valid scores is
// used, and with no valid scores the result is 50.
func aggregate(results []types.Result, weight func(types.Key) float64) aggregation {
	var sum, total float64
	for _, r := range results {
		if r.Skipped || !r.Valid() {
			continue
		}
		w := weight(r.Key)
		if w == 0 || math.IsNaN(w) {
			continue
		}
		sum += (r.Score - normalize.Neutral) * w
		total += math.Abs(w)
	}
	if total > 0 {
		return aggregation{
			Score:         normalize.Neutral + (sum/total)*normalize.Neutral,
			WeightApplied: total,
		}
	}

	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Valid() {
			scores = append(scores, r.Score)
		}
	}
	if len(scores) == 0 {
		return aggregation{Score: normalize.Neutral, Fallback: true}
	}
	return aggregation{Score: textstat.Mean(scores), Fallback: true}
}
