package planner

import "strings"

// LabelTable maps raw location tokens to curated human-presentable
// labels. Tokens without an entry fall back to the token itself with
// underscores replaced by spaces.
type LabelTable map[string]string

// DefaultLabels is the curated table for the hospital deployment the
// planner ships with; it restores the accents the ASCII tokens drop.
var DefaultLabels = LabelTable{
	"farmacia":         "farmácia",
	"recepcao":         "recepção",
	"corredor_central": "corredor central",
	"corredor_ala_1":   "corredor ala 1",
	"corredor_ala_2":   "corredor ala 2",
	"corredor_ala_3":   "corredor ala 3",
	"sala_cirurgia":    "sala de cirurgia",
}

// Humanize converts a raw location token into its presentation label.
func (t LabelTable) Humanize(token string) string {
	if label, ok := t[token]; ok {
		return label
	}
	return strings.ReplaceAll(token, "_", " ")
}

// HumanizeAll maps Humanize over a token slice.
func (t LabelTable) HumanizeAll(tokens []string) []string {
	labels := make([]string, len(tokens))
	for i, token := range tokens {
		labels[i] = t.Humanize(token)
	}
	return labels
}

// Merge returns a copy of the table with overrides applied on top.
func (t LabelTable) Merge(overrides map[string]string) LabelTable {
	merged := make(LabelTable, len(t)+len(overrides))
	for token, label := range t {
		merged[token] = label
	}
	for token, label := range overrides {
		merged[token] = label
	}
	return merged
}
