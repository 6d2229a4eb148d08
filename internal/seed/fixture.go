package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Amounts are strings so they reach decimal.Decimal without a float round trip.
type Fixture struct {
	Products     []ProductFixture     `yaml:"products"`
	Applications []ApplicationFixture `yaml:"applications"`
}

type ProductFixture struct {
	Ref          string `yaml:"ref"`
	Name         string `yaml:"name"`
	InterestRate string `yaml:"interest_rate"`
	MaxLTV       string `yaml:"max_ltv"`
	MinAmount    string `yaml:"min_amount"`
	MaxAmount    string `yaml:"max_amount"`
	TenureMonths int    `yaml:"tenure_months"`
}

type ApplicationFixture struct {
	ApplicantName   string         `yaml:"applicant_name"`
	Product         string         `yaml:"product"`
	RequestedAmount string         `yaml:"requested_amount"`
	Status          string         `yaml:"status"`
	ApprovedBy      string         `yaml:"approved_by"`
	Pledge          *PledgeFixture `yaml:"pledge"`
	// Repayments apply in order once the application is disbursed.
	Repayments []string `yaml:"repayments"`
}

type PledgeFixture struct {
	FundName string `yaml:"fund_name"`
	ISIN     string `yaml:"isin"`
	Units    string `yaml:"units"`
	NAV      string `yaml:"nav"`
}

func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse seed fixture: %w", err)
	}
	refs := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		if p.Ref == "" {
			return nil, fmt.Errorf("product at index %d missing ref", i)
		}
		if refs[p.Ref] {
			return nil, fmt.Errorf("duplicate product ref %q", p.Ref)
		}
		refs[p.Ref] = true
	}
	for i, a := range f.Applications {
		if !refs[a.Product] {
			return nil, fmt.Errorf("application at index %d references unknown product %q", i, a.Product)
		}
		if len(a.Repayments) > 0 && a.Status != "DISBURSED" {
			return nil, fmt.Errorf("application at index %d has repayments but status %q", i, a.Status)
		}
	}
	return &f, nil
}
