package app

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"edakit/domain/core"

	"gopkg.in/yaml.v3"
)

// Comparison asks whether Value differs between rows where Group equals
// Target and all other rows.
type Comparison struct {
	Group  string `yaml:"group" json:"group"`
	Target string `yaml:"target" json:"target"`
	Value  string `yaml:"value" json:"value"`
}

func (c Comparison) Label() string {
	return fmt.Sprintf("%s by %s = %s", c.Value, c.Group, c.Target)
}

// Association asks whether two categorical columns are independent.
type Association struct {
	Row string `yaml:"row" json:"row"`
	Col string `yaml:"col" json:"col"`
}

func (a Association) Label() string {
	return fmt.Sprintf("%s x %s", a.Row, a.Col)
}

// SweepPlan lists the tests to run against one frame.
type SweepPlan struct {
	Comparisons  []Comparison  `yaml:"comparisons" json:"comparisons"`
	Associations []Association `yaml:"associations" json:"associations"`
}

// Len is the number of tests in the plan.
func (p SweepPlan) Len() int {
	return len(p.Comparisons) + len(p.Associations)
}

// Validate rejects empty plans and entries with blank column names.
func (p SweepPlan) Validate() error {
	if p.Len() == 0 {
		return fmt.Errorf("%w: no comparisons or associations", core.ErrInvalidPlan)
	}
	for i, c := range p.Comparisons {
		if blank(c.Group) || blank(c.Value) {
			return fmt.Errorf("%w: comparison %d needs group and value", core.ErrInvalidPlan, i)
		}
	}
	for i, a := range p.Associations {
		if blank(a.Row) || blank(a.Col) {
			return fmt.Errorf("%w: association %d needs row and col", core.ErrInvalidPlan, i)
		}
		if a.Row == a.Col {
			return fmt.Errorf("%w: association %d crosses %q with itself", core.ErrInvalidPlan, i, a.Row)
		}
	}
	return nil
}

// ParsePlan decodes a YAML plan. Unknown keys are rejected.
func ParsePlan(data []byte) (SweepPlan, error) {
	var plan SweepPlan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return SweepPlan{}, fmt.Errorf("%w: %v", core.ErrInvalidPlan, err)
	}
	if err := plan.Validate(); err != nil {
		return SweepPlan{}, err
	}
	return plan, nil
}

// LoadPlan reads and parses a YAML plan file.
func LoadPlan(path string) (SweepPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepPlan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
