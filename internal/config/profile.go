package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// Profile is a named set of valuation assumptions kept in a YAML file:
//
//	name: premium-cabin
//	valuation:
//	  flight_award_cpm: 1.6
//	  flight_taxes_usd: 11.20
//
// Keys left out keep their base value.
type Profile struct {
	Name      string                   `yaml:"name"`
	Valuation domain.ValuationSettings `yaml:"valuation"`
}

// LoadProfile reads the profile at path on top of base.
func LoadProfile(path string, base domain.ValuationSettings) (domain.ValuationSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseProfile(data, base)
}

// ParseProfile decodes a YAML profile on top of base. Unknown keys are rejected.
func ParseProfile(data []byte, base domain.ValuationSettings) (domain.ValuationSettings, error) {
	profile := Profile{Valuation: base}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode profile: %w", err)
	}

	if err := profile.Valuation.Validate(); err != nil {
		return base, fmt.Errorf("profile %q: %w", profile.Name, err)
	}
	return profile.Valuation, nil
}
