package domain

import (
	"fmt"
	"strings"
)

type DefaultSourceKind string

const (
	SourceListDefault     DefaultSourceKind = "list_default"
	SourceKeywordAnalysis DefaultSourceKind = "keyword_analysis"
	SourcePreset          DefaultSourceKind = "preset"
	SourceStickyEstimator DefaultSourceKind = "sticky_estimator"
	SourceSystemDefault   DefaultSourceKind = "system_default"
)

// DefaultSource records where a pre-filled driver choice came from.
// Preset is only set for SourcePreset.
type DefaultSource struct {
	Kind   DefaultSourceKind
	Preset string
}

func ListDefault() DefaultSource     { return DefaultSource{Kind: SourceListDefault} }
func KeywordAnalysis() DefaultSource { return DefaultSource{Kind: SourceKeywordAnalysis} }
func StickyEstimator() DefaultSource { return DefaultSource{Kind: SourceStickyEstimator} }
func SystemDefault() DefaultSource   { return DefaultSource{Kind: SourceSystemDefault} }

// PresetSource returns the provenance label of a named preset.
func PresetSource(name string) DefaultSource {
	return DefaultSource{Kind: SourcePreset, Preset: name}
}

// String renders the canonical storage form, e.g. "preset:backend-api".
func (s DefaultSource) String() string {
	if s.Kind == SourcePreset {
		return string(SourcePreset) + ":" + s.Preset
	}
	return string(s.Kind)
}

// IsZero reports whether no provenance was recorded.
func (s DefaultSource) IsZero() bool {
	return s.Kind == ""
}

// ParseDefaultSource parses the canonical string form. Unknown labels are
// rejected so producers and consumers cannot drift apart silently.
func ParseDefaultSource(s string) (DefaultSource, error) {
	if name, ok := strings.CutPrefix(s, string(SourcePreset)+":"); ok {
		if name == "" {
			return DefaultSource{}, fmt.Errorf("preset source requires a name")
		}
		return PresetSource(name), nil
	}
	switch DefaultSourceKind(s) {
	case SourceListDefault, SourceKeywordAnalysis, SourceStickyEstimator, SourceSystemDefault:
		return DefaultSource{Kind: DefaultSourceKind(s)}, nil
	case SourcePreset:
		return DefaultSource{}, fmt.Errorf("preset source requires a name")
	}
	return DefaultSource{}, fmt.Errorf("unknown default source %q", s)
}
