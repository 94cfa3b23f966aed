package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	for _, k := range AllKeys() {
		got, err := ParseKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKey("ttr_extra")
	assert.Error(t, err)
}

func TestAllKeysUnique(t *testing.T) {
	seen := map[Key]bool{}
	for _, k := range AllKeys() {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Len(t, seen, 27)
}

func TestResultMarshalNaN(t *testing.T) {
	r := Result{Key: KeyParagraphLengthVariance, Name: "Paragraph Length Variance", Value: math.NaN(), Score: 50, Interpretation: Neutral, Skipped: true}
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["value"])
	assert.Equal(t, 50.0, decoded["score"])
	assert.Equal(t, true, decoded["skipped"])
}

func TestResultMarshalValue(t *testing.T) {
	raw, err := json.Marshal(Result{Key: KeyTTR, Value: 0.5, Score: 50})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":0.5`)
	assert.Contains(t, string(raw), `"key":"ttr"`)
}
