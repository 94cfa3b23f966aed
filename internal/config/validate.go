package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"ai_text_analyzer/internal/types"
)

//go:embed schema/*.cue
var schemaFS embed.FS

const schemaDefinition = "#Config"

// Validate rejects structurally invalid configuration. It is the only place
// the scorer reports a hard failure.
func (c Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validateSchema(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) validateFields() error {
	if c.Limits.MinWords < 1 {
		return fmt.Errorf("limits.min_words must be at least 1, got %d", c.Limits.MinWords)
	}
	if c.Limits.MaxWords < c.Limits.MinWords {
		return fmt.Errorf("limits.max_words (%d) is below limits.min_words (%d)", c.Limits.MaxWords, c.Limits.MinWords)
	}
	if c.Limits.MaxChars < 1 {
		return fmt.Errorf("limits.max_chars must be positive, got %d", c.Limits.MaxChars)
	}
	if c.RandomnessFactor < 0 || c.RandomnessFactor > 0.5 || math.IsNaN(c.RandomnessFactor) {
		return fmt.Errorf("randomness_factor must be within [0, 0.5], got %v", c.RandomnessFactor)
	}
	if c.ParagraphCheck.MaxAvgWords < 1 || c.ParagraphCheck.MaxCount < 1 {
		return fmt.Errorf("paragraph_check limits must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for name, w := range c.Weights {
		if _, err := types.ParseKey(name); err != nil {
			return fmt.Errorf("weights: %w", err)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weights.%s must be finite", name)
		}
	}
	for name, b := range c.Thresholds {
		if _, err := types.ParseKey(name); err != nil {
			return fmt.Errorf("thresholds: %w", err)
		}
		if b.Low > b.High {
			return fmt.Errorf("thresholds.%s: low %v is above high %v", name, b.Low, b.High)
		}
	}
	return nil
}

func validateSchema(c Config) error {
	content, err := schemaFS.ReadFile("schema/config.cue")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(content, cue.Filename("config.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath(schemaDefinition))
	if !def.Exists() {
		return fmt.Errorf("schema definition %s not found", schemaDefinition)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data := ctx.CompileBytes(raw, cue.Filename("config.json"))
	if err := data.Err(); err != nil {
		return fmt.Errorf("compile config: %w", err)
	}

	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
