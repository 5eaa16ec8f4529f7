package parser

import (
	"path/filepath"
	"strings"
)

// ParsedFile is the flat summary of a feature file kept in the registry.
type ParsedFile struct {
	Path      string
	Name      string
	Scenarios []ParsedScenario
}

// ParsedScenario is one scenario or outline, flattened for storage and listing.
type ParsedScenario struct {
	Name     string
	Kind     Kind
	Tags     []string
	Steps    int
	Examples int
}

// Transform flattens a Feature parsed from path. A feature with no name is
// named after its file.
func Transform(f *Feature, path string) *ParsedFile {
	pf := &ParsedFile{
		Path: path,
		Name: f.Name,
	}
	if pf.Name == "" {
		pf.Name = filenameWithoutExt(path)
	}

	for _, def := range f.Scenarios {
		ps := ParsedScenario{
			Name:  def.Title(),
			Kind:  def.Kind(),
			Tags:  def.TagNames(),
			Steps: len(def.StepLines()),
		}
		if o, ok := def.(*ScenarioOutline); ok {
			ps.Examples = len(o.Examples)
		}
		pf.Scenarios = append(pf.Scenarios, ps)
	}

	return pf
}

// TagString joins tags with single spaces, the form stored in the registry.
func (ps ParsedScenario) TagString() string {
	return strings.Join(ps.Tags, " ")
}

func filenameWithoutExt(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
