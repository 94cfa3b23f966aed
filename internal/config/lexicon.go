package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed lexicon.json
var lexiconJSON []byte

// Lexicon holds the word-category lists used by the ratio heuristics.
// Entries are lowercase.
type Lexicon struct {
	Transitions     []string `mapstructure:"transitions" yaml:"transitions" json:"transitions"`
	Modals          []string `mapstructure:"modals" yaml:"modals" json:"modals"`
	Pronouns        []string `mapstructure:"pronouns" yaml:"pronouns" json:"pronouns"`
	Hedges          []string `mapstructure:"hedges" yaml:"hedges" json:"hedges"`
	Boosters        []string `mapstructure:"boosters" yaml:"boosters" json:"boosters"`
	Common          []string `mapstructure:"common" yaml:"common" json:"common"`
	NominalSuffixes []string `mapstructure:"nominal_suffixes" yaml:"nominal_suffixes" json:"nominal_suffixes"`
}

// DefaultLexicon decodes the embedded word lists.
func DefaultLexicon() Lexicon {
	var lex Lexicon
	if err := json.Unmarshal(lexiconJSON, &lex); err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex
}
