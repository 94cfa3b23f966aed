// Package config loads and validates the scorer configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"ai_text_analyzer/internal/types"
)

// EnvPrefix is prepended to environment overrides, e.g. ATA_RANDOMNESS_FACTOR.
const EnvPrefix = "ATA"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Limits are caller-side size guards plus the minimum word count the core enforces.
type Limits struct {
	MaxWords int `mapstructure:"max_words" yaml:"max_words" json:"max_words"`
	MaxChars int `mapstructure:"max_chars" yaml:"max_chars" json:"max_chars"`
	MinWords int `mapstructure:"min_words" yaml:"min_words" json:"min_words"`
}

// ParagraphCheck controls when paragraph-dependent heuristics are skipped.
type ParagraphCheck struct {
	MaxAvgWords          int `mapstructure:"max_avg_words" yaml:"max_avg_words" json:"max_avg_words"`
	MaxCount             int `mapstructure:"max_count" yaml:"max_count" json:"max_count"`
	// SingleBlockSentences also skips a lone paragraph with more sentences
	// than this. A genuine one-paragraph essay past the limit loses its
	// paragraph heuristics and is reported at Very Low confidence. 0 disables it.
	SingleBlockSentences int `mapstructure:"single_block_sentences" yaml:"single_block_sentences" json:"single_block_sentences"`
}

type Config struct {
	Limits           Limits                `mapstructure:"limits" yaml:"limits" json:"limits"`
	RandomnessFactor float64               `mapstructure:"randomness_factor" yaml:"randomness_factor" json:"randomness_factor"`
	Seed             int64                 `mapstructure:"seed" yaml:"seed" json:"seed"`
	ParagraphCheck   ParagraphCheck        `mapstructure:"paragraph_check" yaml:"paragraph_check" json:"paragraph_check"`
	Parallel         bool                  `mapstructure:"parallel" yaml:"parallel" json:"parallel"`
	Workers          int                   `mapstructure:"workers" yaml:"workers" json:"workers"`
	Weights          map[string]float64    `mapstructure:"weights" yaml:"weights" json:"weights"`
	Thresholds       map[string]types.Band `mapstructure:"thresholds" yaml:"thresholds" json:"thresholds"`
	Lexicon          Lexicon               `mapstructure:"lexicon" yaml:"lexicon" json:"lexicon"`
}

func Default() Config {
	return Config{
		Limits: Limits{
			MaxWords: 10000,
			MaxChars: 70000,
			MinWords: 50,
		},
		RandomnessFactor: 0.05,
		Seed:             -1,
		ParagraphCheck: ParagraphCheck{
			MaxAvgWords:          1000,
			MaxCount:             5,
			SingleBlockSentences: 15,
		},
		Parallel:   false,
		Workers:    0,
		Weights:    DefaultWeights(),
		Thresholds: DefaultThresholds(),
		Lexicon:    DefaultLexicon(),
	}
}

// DefaultWeights are magnitudes. Each heuristic's normalization already
// points its score toward "ai" (above 50) or "human" (below 50).
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		string(types.KeyTTR):                     15,
		string(types.KeyAvgWordLength):           8,
		string(types.KeyFleschReadingEase):       10,
		string(types.KeyGunningFog):              12,
		string(types.KeyAvgSentenceLength):       5,
		string(types.KeySentenceLengthVariance):  25,
		string(types.KeyParagraphLengthVariance): 15,
		string(types.KeyDeclarativeRatio):        3,
		string(types.KeyQuestionRatio):           5,
		string(types.KeyExclamationRatio):        8,
		string(types.KeyWordRepetition):          20,
		string(types.KeyBigramRepetition):        12.5,
		string(types.KeyTrigramRepetition):       12.5,
		string(types.KeySentenceStartDiversity):  10,
		string(types.KeyTransitionWordRatio):     18,
		string(types.KeyPassiveVoiceRatio):       15,
		string(types.KeyModalVerbRatio):          5,
		string(types.KeyPersonalPronounRatio):    20,
		string(types.KeyContractionRatio):        12,
		string(types.KeyHedgeWordRatio):          8,
		string(types.KeyBoosterWordRatio):        6,
		string(types.KeyNominalizationRatio):     7,
		string(types.KeyCommonWordRatio):         5,
		string(types.KeyPredictabilityProxy):     15,
		string(types.KeyAvgParagraphLength):      2,
		string(types.KeyListUsage):               3,
		string(types.KeyQuoteUsage):              4,
	}
}

// DefaultThresholds returns the interpretation bands. Heuristics without a
// band always interpret as neutral.
func DefaultThresholds() map[string]types.Band {
	return map[string]types.Band{
		string(types.KeyTTR):                     {Low: 0.4, High: 0.6},
		string(types.KeyAvgWordLength):           {Low: 4.0, High: 5.5},
		string(types.KeyFleschReadingEase):       {Low: 50, High: 70},
		string(types.KeyGunningFog):              {Low: 10, High: 15},
		string(types.KeySentenceLengthVariance):  {Low: 5, High: 15},
		string(types.KeyParagraphLengthVariance): {Low: 10, High: 100},
		string(types.KeyDeclarativeRatio):        {Low: 0, High: 0.98},
		string(types.KeyQuestionRatio):           {Low: 0, High: 0.01},
		string(types.KeyExclamationRatio):        {Low: 0, High: 0.01},
		string(types.KeyWordRepetition):          {Low: 0.02, High: 0.05},
		string(types.KeyBigramRepetition):        {Low: 0.01, High: 0.03},
		string(types.KeyTrigramRepetition):       {Low: 0.01, High: 0.03},
		string(types.KeySentenceStartDiversity):  {Low: 0.1, High: 0.8},
		string(types.KeyPassiveVoiceRatio):       {Low: 0.05, High: 0.15},
		string(types.KeyPersonalPronounRatio):    {Low: 0.01, High: 0.04},
		string(types.KeyContractionRatio):        {Low: 0.005, High: 0.02},
		string(types.KeyNominalizationRatio):     {Low: 0, High: 0.1},
		string(types.KeyListUsage):               {Low: 0, High: 0},
		string(types.KeyQuoteUsage):              {Low: 0, High: 1},
	}
}

// Weight returns the configured weight for k, or 0 when none is set.
func (c Config) Weight(k types.Key) float64 {
	return c.Weights[string(k)]
}

// Band returns the threshold band for k.
func (c Config) Band(k types.Key) (types.Band, bool) {
	b, ok := c.Thresholds[string(k)]
	return b, ok
}

// Load layers defaults, an optional config file and ATA_* environment
// variables onto v, then decodes and validates the result. Flags already
// bound to v take precedence over all of them.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return Config{}, fmt.Errorf("marshal defaults: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML with keys in a stable order.
func Marshal(cfg Config) ([]byte, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return raw, nil
}

// Clone returns a deep copy so callers can tweak weights without touching a shared value.
func (c Config) Clone() Config {
	out := c
	out.Weights = maps.Clone(c.Weights)
	out.Thresholds = maps.Clone(c.Thresholds)
	out.Lexicon = Lexicon{
		Transitions:     slices.Clone(c.Lexicon.Transitions),
		Modals:          slices.Clone(c.Lexicon.Modals),
		Pronouns:        slices.Clone(c.Lexicon.Pronouns),
		Hedges:          slices.Clone(c.Lexicon.Hedges),
		Boosters:        slices.Clone(c.Lexicon.Boosters),
		Common:          slices.Clone(c.Lexicon.Common),
		NominalSuffixes: slices.Clone(c.Lexicon.NominalSuffixes),
	}
	return out
}
