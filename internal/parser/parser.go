package parser

import (
	"strings"

	"github.com/chriserin/ftskel/internal/ordered"
)

const docStringFence = `"""`

type mode int

const (
	modeNone mode = iota
	modeBackground
	modeScenario
	modeOutline
	modeRule
)

func (m mode) String() string {
	switch m {
	case modeBackground:
		return "background"
	case modeScenario:
		return "scenario"
	case modeOutline:
		return "outline"
	case modeRule:
		return "rule"
	default:
		return "none"
	}
}

type keywordHandler struct {
	prefix string
	handle func(s *state, rest string)
}

// keywords is checked in order. "Scenario Outline:" must precede "Scenario:".
var keywords = []keywordHandler{
	{"Feature:", (*state).onFeature},
	{"Background:", (*state).onBackground},
	{"Scenario Outline:", (*state).onOutline},
	{"Scenario:", (*state).onScenario},
	{"Examples:", (*state).onExamples},
	{"Rule:", (*state).onRule},
}

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// state is the mutable context of one parse. Never shared between parses.
type state struct {
	feature *Feature
	mode    mode

	steps  *[]string
	active ScenarioDefinition
	header []string

	pendingTags []string
	lastWasTag  bool
	inDocString bool
}

func newState() *state {
	return &state{
		feature: &Feature{
			Description: []string{},
			Scenarios:   []ScenarioDefinition{},
		},
	}
}

// Parse builds a Feature from feature-file lines in a single forward pass.
// It never fails: lines that fit nowhere are dropped.
func Parse(lines []string) *Feature {
	s := newState()
	for _, line := range lines {
		s.consume(line)
	}
	return s.feature
}

// ParseContent splits content into lines and parses them.
func ParseContent(content []byte) *Feature {
	return Parse(strings.Split(string(content), "\n"))
}

func (s *state) consume(raw string) {
	line := strings.TrimSpace(raw)

	// Consecutive tag lines accumulate; any other line in between resets the run.
	afterTag := s.lastWasTag
	s.lastWasTag = false

	switch {
	case strings.HasPrefix(line, docStringFence):
		s.inDocString = !s.inDocString
		s.appendStep(line)
	case s.inDocString:
		s.appendStep(line)
	case strings.HasPrefix(line, "@"):
		s.bufferTags(line, afterTag)
		s.lastWasTag = true
	default:
		if h, rest, ok := matchKeyword(line); ok {
			h.handle(s, rest)
			return
		}
		switch {
		case strings.HasPrefix(line, "|"):
			s.tableRow(splitRow(line))
		case isStep(line):
			s.appendStep(line)
		case line != "" && s.mode == modeNone:
			s.feature.Description = append(s.feature.Description, line)
		}
	}
}

func matchKeyword(line string) (keywordHandler, string, bool) {
	for _, kw := range keywords {
		if strings.HasPrefix(line, kw.prefix) {
			return kw, strings.TrimSpace(strings.TrimPrefix(line, kw.prefix)), true
		}
	}
	return keywordHandler{}, "", false
}

func isStep(line string) bool {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

func (s *state) appendStep(line string) {
	if s.steps == nil {
		return
	}
	*s.steps = append(*s.steps, line)
}

func (s *state) bufferTags(line string, appendToRun bool) {
	if !appendToRun {
		s.pendingTags = nil
	}
	s.pendingTags = append(s.pendingTags, strings.Fields(line)...)
}

func (s *state) flushTags() []string {
	tags := s.pendingTags
	s.pendingTags = nil
	if tags == nil {
		return []string{}
	}
	return tags
}

func (s *state) onFeature(rest string) {
	s.feature.Name = rest
}

func (s *state) onBackground(string) {
	bg := &Background{Steps: []string{}}
	s.feature.Background = bg
	s.steps = &bg.Steps
	s.mode = modeBackground
}

func (s *state) onOutline(rest string) {
	o := &ScenarioOutline{
		Name:     rest,
		Steps:    []string{},
		Tags:     s.flushTags(),
		Examples: []ExampleRow{},
	}
	s.feature.Scenarios = append(s.feature.Scenarios, o)
	s.active = o
	s.steps = &o.Steps
	s.mode = modeOutline
}

func (s *state) onScenario(rest string) {
	sc := &Scenario{
		Name:  rest,
		Steps: []string{},
		Tags:  s.flushTags(),
	}
	s.feature.Scenarios = append(s.feature.Scenarios, sc)
	s.active = sc
	s.steps = &sc.Steps
	s.mode = modeScenario
}

func (s *state) onExamples(string) {
	s.header = nil
}

func (s *state) onRule(rest string) {
	s.feature.Description = append(s.feature.Description, "Rule: "+rest)
	s.mode = modeRule
}

func (s *state) tableRow(cells []string) {
	if s.header == nil {
		s.header = cells
		return
	}
	outline, ok := s.active.(*ScenarioOutline)
	if !ok {
		return
	}
	row := ordered.New[string]()
	for i, h := range s.header {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		row.Set(h, v)
	}
	outline.Examples = append(outline.Examples, row)
}

// splitRow drops the empty fields outside the boundary pipes and trims each cell.
func splitRow(line string) []string {
	fields := strings.Split(line, "|")[1:]
	if strings.HasSuffix(line, "|") && len(fields) > 0 {
		fields = fields[:len(fields)-1]
	}
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = strings.TrimSpace(f)
	}
	return cells
}
