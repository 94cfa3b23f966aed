package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ai_text_analyzer/internal/aidetect"
	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/db"
	"ai_text_analyzer/internal/heuristics"
	"ai_text_analyzer/internal/types"
)

func sampleDocs() []Document {
	return []Document{{
		Source: "essay.txt",
		Report: aidetect.Report{
			DocumentID:   "essay",
			OverallScore: 72.3,
			Verdict:      aidetect.VerdictAI,
			Confidence:   aidetect.Confidence{Score: 34.5, Level: aidetect.Low},
			WordCount:    1234,
			Results: []types.Result{
				{Key: types.KeyTTR, Name: "Vocabulary Richness (TTR)", Value: 0.41, Score: 72.5, Interpretation: types.AI},
				{Key: types.KeyAvgWordLength, Name: "Average Word Length", Value: 4.6, Score: 56, Interpretation: types.Neutral},
				{Key: types.KeyParagraphLengthVariance, Name: "Paragraph Length Variance", Value: math.NaN(), Score: 50,
					Interpretation: types.Neutral, Skipped: true},
			},
			Errors: []aidetect.ErrorEntry{},
			Traces: []aidetect.SpanTrace{},
		},
	}}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range append(Formats(), "md", "yml", "") {
		f, err := New(name, false)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := New("xml", false)
	assert.Error(t, err)
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(false).Format(&buf, sampleDocs()))
	out := buf.String()

	assert.Contains(t, out, "essay.txt")
	assert.Contains(t, out, string(aidetect.VerdictAI))
	assert.Contains(t, out, "AI likelihood: 72.3%")
	assert.Contains(t, out, "Words: 1,234")
	assert.Contains(t, out, "n/a")
	// sorted by name
	assert.Less(t, strings.Index(out, "Average Word Length"), strings.Index(out, "Paragraph Length Variance"))
	assert.Less(t, strings.Index(out, "Paragraph Length Variance"), strings.Index(out, "Vocabulary Richness"))
}

func TestTextFormatterErrorReport(t *testing.T) {
	docs := []Document{{Source: "short.txt", Report: aidetect.Report{Error: true, Message: "Text is too short"}}}
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(false).Format(&buf, docs))
	assert.Contains(t, buf.String(), "Text is too short")
	assert.NotContains(t, buf.String(), "AI likelihood")
}

func TestJSONFormatterEncodesNaNAsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Format(&buf, sampleDocs()))

	var decoded struct {
		Source string `json:"source"`
		Report struct {
			OverallScore float64 `json:"overall_score"`
			Results      []struct {
				Key   string   `json:"key"`
				Value *float64 `json:"value"`
			} `json:"results"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "essay.txt", decoded.Source)
	assert.Equal(t, 72.3, decoded.Report.OverallScore)
	require.Len(t, decoded.Report.Results, 3)
	assert.Nil(t, decoded.Report.Results[2].Value)
	require.NotNil(t, decoded.Report.Results[0].Value)
	assert.Equal(t, 0.41, *decoded.Report.Results[0].Value)
}

func TestJSONFormatterMultipleDocuments(t *testing.T) {
	docs := append(sampleDocs(), sampleDocs()...)
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{Indent: true}.Format(&buf, docs))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLFormatter{}.Format(&buf, sampleDocs()))
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	report, ok := decoded["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 72.3, report["overall_score"])
	assert.Equal(t, "Low", report["confidence"].(map[string]any)["level"])
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarkdownFormatter{}.Format(&buf, sampleDocs()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# AI Text Analysis Report"))
	assert.Contains(t, out, "## essay.txt")
	assert.Contains(t, out, "| AI likelihood | 72.3% |")
	assert.Contains(t, out, "| Paragraph Length Variance | n/a | 50.0 | neutral |")
}

func TestHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	analyses := []db.Analysis{{
		ID:              "0f8fad5b-d9cb-469f-a165-70867728950e",
		SourcePath:      "essay.txt",
		CreatedAt:       now.Add(-2 * time.Hour),
		WordCount:       1500,
		OverallScore:    61.3,
		Confidence:      22.6,
		ConfidenceLevel: "Medium",
	}}
	var buf bytes.Buffer
	require.NoError(t, History(&buf, analyses, now))
	out := buf.String()
	assert.Contains(t, out, "0f8fad5b")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "61.3")
	assert.Contains(t, out, "2 hours ago")

	buf.Reset()
	require.NoError(t, History(&buf, nil, now))
	assert.Contains(t, buf.String(), "No saved analyses.")
}

func TestHeuristicsListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Heuristics(&buf, heuristics.All(), config.Default()))
	out := buf.String()
	for _, k := range types.AllKeys() {
		assert.Contains(t, out, string(k))
	}
	assert.Contains(t, out, "higher leans human")
}

func TestResultsListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Results(&buf, sampleDocs()[0].Report.Results))
	out := buf.String()
	assert.Contains(t, out, "Paragraph Length Variance (skipped)")
	assert.Contains(t, out, "0.41")
	assert.Contains(t, out, "72.5")
}
