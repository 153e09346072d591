package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for requirement import.
type ImportSchema struct {
	Defaults     *DefaultsImport     `json:"defaults,omitempty"`
	Requirements []RequirementImport `json:"requirements"`
}

// DefaultsImport holds file-wide defaults that cascade to requirements.
type DefaultsImport struct {
	Priority string `json:"priority,omitempty"`
	State    string `json:"state,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Preset   string `json:"preset,omitempty"`
}

// RequirementImport defines one requirement in the import file. Parents may
// be listed before or after their children.
type RequirementImport struct {
	Ref         string          `json:"ref"`
	ParentRef   *string         `json:"parent_ref,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	State       string          `json:"state,omitempty"`
	Difficulty  string          `json:"difficulty,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Estimate    *EstimateImport `json:"estimate,omitempty"`
}

// EstimateImport is an optional initial estimate for a requirement. Driver
// keys are dimension names ("complexity", "environments", "reuse",
// "stakeholders"); missing dimensions are pre-filled on import.
type EstimateImport struct {
	Scenario   string            `json:"scenario,omitempty"`
	Activities []string          `json:"activities"`
	Drivers    map[string]string `json:"drivers,omitempty"`
	Risks      []string          `json:"risks,omitempty"`
	Preset     string            `json:"preset,omitempty"`
}

// LoadImportSchema reads and parses a requirement import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses an import document.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
