// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Definition describes a patent landscape: the search terms, the
// classification prefixes, and the bounds on the candidate set. A
// researcher keeps definitions as YAML files and reuses them across
// runs.
type Definition struct {
	// Name labels the landscape; it prefixes export filenames.
	Name string `yaml:"name" validate:"required"`

	// Description is free text for the report header.
	Description string `yaml:"description"`

	// YearFrom and YearTo bound the filing year, inclusive. Zero means
	// unbounded on that side.
	YearFrom int `yaml:"year_from" validate:"omitempty,gte=1800"`
	YearTo   int `yaml:"year_to" validate:"omitempty,gtefield=YearFrom"`

	// Keywords are matched case-insensitively as substrings of the
	// title or abstract. At least one of Keywords and CPCPrefixes must
	// be set.
	Keywords []string `yaml:"keywords" validate:"required_without=CPCPrefixes"`

	// CPCPrefixes are matched as prefixes of the CPC classification
	// symbol, ignoring the symbol's internal padding ("C22B 59" and
	// "C22B  59" are the same prefix).
	CPCPrefixes []string `yaml:"cpc_prefixes" validate:"required_without=Keywords"`

	// Authorities restricts the filing offices, empty means all.
	Authorities []string `yaml:"authorities"`

	// MaxResults caps each search strategy. Zero means no cap.
	MaxResults int `yaml:"max_results" validate:"gte=0"`
}

// Validate checks the definition beyond what the YAML shape enforces.
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid landscape definition: %w", err)
	}
	for _, kw := range d.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("invalid landscape definition: blank keyword")
		}
	}
	for _, p := range d.CPCPrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("invalid landscape definition: blank cpc prefix")
		}
	}
	return nil
}

// Default returns the built-in rare-earth-elements landscape used when
// no definition file is configured.
func Default() Definition {
	return Definition{
		Name:        "rare-earth-elements",
		Description: "Rare earth element extraction, processing, magnets, phosphors, and recycling",
		YearFrom:    2010,
		Keywords: []string{
			"rare earth",
			"neodymium",
			"dysprosium",
			"lanthanum",
			"yttrium",
			"lanthanide",
		},
		CPCPrefixes: []string{
			"C22B 59",    // obtaining rare earth metals
			"H01F 1/057", // NdFeB permanent magnets
			"C09K 11/77", // rare earth phosphors
			"Y02W 30/52", // material recycling
		},
	}
}

// ReadFile loads a landscape definition from a YAML file and validates
// it.
func ReadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading definition file: %w", err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parsing definition file %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("definition file %s: %w", path, err)
	}
	return def, nil
}

// WriteFile saves a definition as YAML, for seeding a landscapes
// directory with the built-in default.
func WriteFile(path string, def Definition) error {
	data, err := yaml.Marshal(&def)
	if err != nil {
		return fmt.Errorf("marshaling definition: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
