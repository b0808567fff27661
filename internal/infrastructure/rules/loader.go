// Package rules loads bureau tables from YAML files.
package rules

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
)

//go:embed schema.json
var schemaJSON []byte

type fileBand struct {
	Min          *int `yaml:"min,omitempty"`
	Max          *int `yaml:"max,omitempty"`
	MinInclusive bool `yaml:"min_inclusive"`
	MaxInclusive bool `yaml:"max_inclusive"`
	Points       int  `yaml:"points"`
}

type fileBandSet struct {
	Bands    []fileBand `yaml:"bands"`
	Fallback int        `yaml:"fallback"`
}

type fileTable struct {
	Name   string      `yaml:"name"`
	NoHit  fileBandSet `yaml:"no_hit"`
	Bureau fileBandSet `yaml:"bureau"`
}

// Resolve returns the table in path when set, else the built-in table name.
func Resolve(name, path string) (service.BureauTable, error) {
	if path != "" {
		return Load(path)
	}
	table, err := service.BureauTableByName(name)
	if err != nil {
		return service.BureauTable{}, fmt.Errorf("rules: %w", err)
	}
	return table, nil
}

// Load reads and validates a bureau table file.
func Load(path string) (service.BureauTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.BureauTable{}, fmt.Errorf("rules: read %s: %w", path, err)
	}
	table, err := Parse(data)
	if err != nil {
		return service.BureauTable{}, fmt.Errorf("rules: %s: %w", path, err)
	}
	return table, nil
}

// Parse validates a YAML document against the bureau table schema and
// converts it to a BureauTable.
func Parse(data []byte) (service.BureauTable, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return service.BureauTable{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return service.BureauTable{}, err
	}

	var ft fileTable
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return service.BureauTable{}, fmt.Errorf("decode table: %w", err)
	}

	table := service.BureauTable{
		Name:   ft.Name,
		NoHit:  ft.NoHit.toBandSet(),
		Bureau: ft.Bureau.toBandSet(),
	}
	if err := table.Validate(); err != nil {
		return service.BureauTable{}, err
	}
	return table, nil
}

func validate(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("invalid bureau table: %v", errs)
	}
	return nil
}

func (s fileBandSet) toBandSet() service.BandSet {
	bands := make([]service.Band, 0, len(s.Bands))
	for _, b := range s.Bands {
		band := service.Band{
			MinInclusive: b.MinInclusive,
			MaxInclusive: b.MaxInclusive,
			Points:       b.Points,
			NoMin:        b.Min == nil,
			NoMax:        b.Max == nil,
		}
		if b.Min != nil {
			band.Min = *b.Min
		}
		if b.Max != nil {
			band.Max = *b.Max
		}
		bands = append(bands, band)
	}
	return service.BandSet{Bands: bands, Fallback: s.Fallback}
}

// Marshal renders a table in the file format accepted by Parse.
func Marshal(t service.BureauTable) ([]byte, error) {
	ft := fileTable{
		Name:   t.Name,
		NoHit:  fromBandSet(t.NoHit),
		Bureau: fromBandSet(t.Bureau),
	}
	return yaml.Marshal(ft)
}

func fromBandSet(s service.BandSet) fileBandSet {
	bands := make([]fileBand, 0, len(s.Bands))
	for _, b := range s.Bands {
		fb := fileBand{MinInclusive: b.MinInclusive, MaxInclusive: b.MaxInclusive, Points: b.Points}
		if !b.NoMin {
			v := b.Min
			fb.Min = &v
		}
		if !b.NoMax {
			v := b.Max
			fb.Max = &v
		}
		bands = append(bands, fb)
	}
	return fileBandSet{Bands: bands, Fallback: s.Fallback}
}
