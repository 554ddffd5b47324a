package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML overlay applied on top of the project
// configuration for a single generate run. Pointer fields distinguish
// "not set" from an explicit zero.
type Profile struct {
	Seed     *int64           `yaml:"seed"`
	Counts   *ProfileCounts   `yaml:"counts"`
	Policies *ProfilePolicies `yaml:"policies"`
	Formats  []string         `yaml:"formats"`
}

type ProfileCounts struct {
	Customers *int `yaml:"customers"`
	Products  *int `yaml:"products"`
	Orders    *int `yaml:"orders"`
	Reviews   *int `yaml:"reviews"`
}

type ProfilePolicies struct {
	VerifiedPurchase *string `yaml:"verified_purchase"`
	PriceSpread      *bool   `yaml:"price_spread"`
}

// LoadProfile reads a generation profile from disk. Unknown keys are
// rejected so a typoed override fails instead of silently vanishing.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply overlays the profile onto cfg, touching only the fields the
// profile sets.
func (p *Profile) Apply(cfg *Config) {
	if p.Seed != nil {
		cfg.Seed = *p.Seed
	}
	if p.Counts != nil {
		if p.Counts.Customers != nil {
			cfg.Counts.Customers = *p.Counts.Customers
		}
		if p.Counts.Products != nil {
			cfg.Counts.Products = *p.Counts.Products
		}
		if p.Counts.Orders != nil {
			cfg.Counts.Orders = *p.Counts.Orders
		}
		if p.Counts.Reviews != nil {
			cfg.Counts.Reviews = *p.Counts.Reviews
		}
	}
	if p.Policies != nil {
		if p.Policies.VerifiedPurchase != nil {
			cfg.Policies.VerifiedPurchase = *p.Policies.VerifiedPurchase
		}
		if p.Policies.PriceSpread != nil {
			cfg.Policies.PriceSpread = *p.Policies.PriceSpread
		}
	}
	if len(p.Formats) > 0 {
		cfg.Formats = append([]string(nil), p.Formats...)
	}
}
