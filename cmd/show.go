package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/ftskel/internal/parser"
	"github.com/chriserin/ftskel/internal/ui"
)

var formatFlag string

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the parsed model of a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0], formatFlag)
	},
}

func init() {
	showCmd.Flags().StringVarP(&formatFlag, "format", "f", "pretty", "Output format: pretty, json or yaml")
	rootCmd.AddCommand(showCmd)
}

type featureView struct {
	Name        string             `json:"name" yaml:"name"`
	Description []string           `json:"description" yaml:"description"`
	Background  *parser.Background `json:"background,omitempty" yaml:"background,omitempty"`
	Scenarios   []scenarioView     `json:"scenarios" yaml:"scenarios"`
}

type scenarioView struct {
	Kind     parser.Kind         `json:"kind" yaml:"kind"`
	Name     string              `json:"name" yaml:"name"`
	Tags     []string            `json:"tags" yaml:"tags"`
	Steps    []string            `json:"steps" yaml:"steps"`
	Examples []parser.ExampleRow `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func newFeatureView(f *parser.Feature) featureView {
	v := featureView{
		Name:        f.Name,
		Description: f.Description,
		Background:  f.Background,
		Scenarios:   []scenarioView{},
	}
	for _, def := range f.Scenarios {
		sv := scenarioView{
			Kind:  def.Kind(),
			Name:  def.Title(),
			Tags:  def.TagNames(),
			Steps: def.StepLines(),
		}
		if o, ok := def.(*parser.ScenarioOutline); ok {
			sv.Examples = o.Examples
		}
		v.Scenarios = append(v.Scenarios, sv)
	}
	return v
}

func RunShow(w io.Writer, path, format string) error {
	content, err := readFeature(path)
	if err != nil {
		return err
	}
	f := parser.ParseContent(content)

	switch format {
	case "", "pretty":
		ui.ShowFeature(w, f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newFeatureView(f)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newFeatureView(f)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q: must be pretty, json or yaml", format)
	}
	return nil
}
