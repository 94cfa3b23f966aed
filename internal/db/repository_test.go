package db

import (
	"math"
	"path/filepath"
	"testing"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/types"
)

func sampleReport(id string, score float64) aidetect.Report {
	return aidetect.Report{
		DocumentID:               id,
		OverallScore:             score,
		Verdict:                  aidetect.VerdictFor(score),
		Confidence:               aidetect.Confidence{Score: 12.5, Level: aidetect.VeryLow},
		WordCount:                320,
		SentenceCount:            40,
		ParagraphCount:           1,
		ParagraphAnalysisSkipped: true,
		Results: []types.Result{
			{Key: types.KeyTTR, Name: "Vocabulary Richness (TTR)", Value: 0.025, Score: 100, Interpretation: types.AI},
			{Key: types.KeyParagraphLengthVariance, Name: "Paragraph Length Variance", Value: math.NaN(), Score: 50, Interpretation: types.Neutral, Skipped: true},
		},
	}
}

func TestSaveReport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analyses.db")
	id, err := SaveReport(dbPath, Source{Path: "essay.txt", SHA256: "abc"}, sampleReport("essay", 81.2))
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	if id == "" {
		t.Fatal("expected an analysis id")
	}

	analyses, err := CountRows(dbPath, "analyses")
	if err != nil {
		t.Fatalf("count analyses: %v", err)
	}
	if analyses != 1 {
		t.Fatalf("expected 1 analysis, got %d", analyses)
	}
	results, err := CountRows(dbPath, "heuristic_results")
	if err != nil {
		t.Fatalf("count results: %v", err)
	}
	if results != 2 {
		t.Fatalf("expected 2 heuristic results, got %d", results)
	}

	loaded, err := LoadResults(dbPath, id)
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 loaded results, got %d", len(loaded))
	}
	if loaded[0].Key != types.KeyTTR || loaded[0].Value != 0.025 || loaded[0].Interpretation != types.AI {
		t.Fatalf("unexpected first result: %+v", loaded[0])
	}
	if !math.IsNaN(loaded[1].Value) || !loaded[1].Skipped {
		t.Fatalf("expected NULL value to load as NaN for skipped result: %+v", loaded[1])
	}
}

func TestListReports(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analyses.db")
	for i, score := range []float64{20, 50, 90} {
		report := sampleReport(string(rune('a'+i)), score)
		if _, err := SaveReport(dbPath, Source{Path: "doc.md"}, report); err != nil {
			t.Fatalf("save report %d: %v", i, err)
		}
	}

	all, err := ListReports(dbPath, 0)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(all))
	}
	if all[0].DocumentID != "c" || all[0].Verdict != string(aidetect.VerdictAI) {
		t.Fatalf("expected newest first, got %+v", all[0])
	}
	if !all[0].ParagraphsSkipped || all[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected stored fields: %+v", all[0])
	}

	limited, err := ListReports(dbPath, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(limited))
	}
}
