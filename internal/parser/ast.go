package parser

import "github.com/chriserin/ftskel/internal/ordered"

// Document model produced by Parse. Plain records; the generator only reads them.

type Feature struct {
	Name        string               `json:"name" yaml:"name"`
	Description []string             `json:"description" yaml:"description"`
	Background  *Background          `json:"background,omitempty" yaml:"background,omitempty"`
	Scenarios   []ScenarioDefinition `json:"scenarios" yaml:"scenarios"`
}

type Background struct {
	Steps []string `json:"steps" yaml:"steps"`
}

// ScenarioDefinition is either a *Scenario or a *ScenarioOutline.
type ScenarioDefinition interface {
	definition()
	Kind() Kind
	Title() string
	StepLines() []string
	TagNames() []string
}

type Kind string

const (
	KindScenario Kind = "scenario"
	KindOutline  Kind = "outline"
)

type Scenario struct {
	Name  string   `json:"name" yaml:"name"`
	Steps []string `json:"steps" yaml:"steps"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// ExampleRow maps column header to cell, in header order.
type ExampleRow = ordered.Map[string]

type ScenarioOutline struct {
	Name     string       `json:"name" yaml:"name"`
	Steps    []string     `json:"steps" yaml:"steps"`
	Tags     []string     `json:"tags" yaml:"tags"`
	Examples []ExampleRow `json:"examples" yaml:"examples"`
}

func (s *Scenario) definition()         {}
func (s *Scenario) Kind() Kind          { return KindScenario }
func (s *Scenario) Title() string       { return s.Name }
func (s *Scenario) StepLines() []string { return s.Steps }
func (s *Scenario) TagNames() []string  { return s.Tags }

func (o *ScenarioOutline) definition()         {}
func (o *ScenarioOutline) Kind() Kind          { return KindOutline }
func (o *ScenarioOutline) Title() string       { return o.Name }
func (o *ScenarioOutline) StepLines() []string { return o.Steps }
func (o *ScenarioOutline) TagNames() []string  { return o.Tags }
