package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

type fileCatalog struct {
	CatalogVersion string            `yaml:"catalog_version"`
	DriversVersion string            `yaml:"drivers_version"`
	RiskmapVersion string            `yaml:"riskmap_version"`
	Activities     []fileActivity    `yaml:"activities"`
	Drivers        []fileDriver      `yaml:"drivers"`
	Risks          []fileRisk        `yaml:"risks"`
	Bands          []fileBand        `yaml:"contingency_bands,omitempty"`
	Presets        map[string]preset `yaml:"presets,omitempty"`
}

type fileActivity struct {
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name,omitempty"`
	BaseDays    float64 `yaml:"base_days"`
	DriverGroup string  `yaml:"driver_group"`
}

type fileDriver struct {
	Dimension  string  `yaml:"dimension"`
	Option     string  `yaml:"option"`
	Multiplier float64 `yaml:"multiplier"`
}

type fileRisk struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name,omitempty"`
	Weight float64 `yaml:"weight"`
}

type fileBand struct {
	UpTo *float64 `yaml:"up_to,omitempty"`
	Pct  float64  `yaml:"pct"`
}

type preset struct {
	Complexity   string `yaml:"complexity"`
	Environments string `yaml:"environments"`
	Reuse        string `yaml:"reuse"`
	Stakeholders string `yaml:"stakeholders"`
}

// LoadFile reads, parses and validates a catalog YAML file.
func LoadFile(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}

// Load returns the catalog at path, or the built-in default when path is
// empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*domain.Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat := fc.toDomain()
	if err := Validate(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Marshal renders cat in the file format Parse accepts.
func Marshal(cat *domain.Catalog) ([]byte, error) {
	return yaml.Marshal(fromDomain(cat))
}

func (fc fileCatalog) toDomain() *domain.Catalog {
	cat := &domain.Catalog{
		CatalogVersion: fc.CatalogVersion,
		DriversVersion: fc.DriversVersion,
		RiskmapVersion: fc.RiskmapVersion,
	}
	for _, a := range fc.Activities {
		cat.Activities = append(cat.Activities, domain.Activity(a))
	}
	for _, d := range fc.Drivers {
		cat.Drivers = append(cat.Drivers, domain.Driver{
			Dimension:  domain.DriverDimension(d.Dimension),
			Option:     d.Option,
			Multiplier: d.Multiplier,
		})
	}
	for _, r := range fc.Risks {
		cat.Risks = append(cat.Risks, domain.Risk(r))
	}
	for _, b := range fc.Bands {
		cat.Bands = append(cat.Bands, domain.ContingencyBand(b))
	}
	if len(fc.Presets) > 0 {
		cat.Presets = make(map[string]domain.DriverSelection, len(fc.Presets))
		for name, p := range fc.Presets {
			cat.Presets[name] = domain.DriverSelection(p)
		}
	}
	return cat
}

func fromDomain(cat *domain.Catalog) fileCatalog {
	fc := fileCatalog{
		CatalogVersion: cat.CatalogVersion,
		DriversVersion: cat.DriversVersion,
		RiskmapVersion: cat.RiskmapVersion,
	}
	for _, a := range cat.Activities {
		fc.Activities = append(fc.Activities, fileActivity(a))
	}
	for _, d := range cat.Drivers {
		fc.Drivers = append(fc.Drivers, fileDriver{
			Dimension:  string(d.Dimension),
			Option:     d.Option,
			Multiplier: d.Multiplier,
		})
	}
	for _, r := range cat.Risks {
		fc.Risks = append(fc.Risks, fileRisk(r))
	}
	for _, b := range cat.Bands {
		fc.Bands = append(fc.Bands, fileBand(b))
	}
	if len(cat.Presets) > 0 {
		fc.Presets = make(map[string]preset, len(cat.Presets))
		for name, p := range cat.Presets {
			fc.Presets[name] = preset(p)
		}
	}
	return fc
}
