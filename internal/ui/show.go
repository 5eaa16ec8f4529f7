package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/ftskel/internal/parser"
)

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// ShowFeature renders a parsed feature back in feature-file layout.
func ShowFeature(w io.Writer, f *parser.Feature) {
	fmt.Fprintln(w, keywordStyle.Render("Feature:")+" "+f.Name)
	for _, line := range f.Description {
		fmt.Fprintln(w, "  "+faintStyle.Render(line))
	}

	if f.Background != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+keywordStyle.Render("Background:"))
		showSteps(w, f.Background.Steps)
	}

	for _, def := range f.Scenarios {
		fmt.Fprintln(w)
		if tags := def.TagNames(); len(tags) > 0 {
			fmt.Fprintln(w, "  "+tagStyle.Render(strings.Join(tags, " ")))
		}
		switch sc := def.(type) {
		case *parser.Scenario:
			fmt.Fprintln(w, "  "+keywordStyle.Render("Scenario:")+" "+sc.Name)
			showSteps(w, sc.Steps)
		case *parser.ScenarioOutline:
			fmt.Fprintln(w, "  "+keywordStyle.Render("Scenario Outline:")+" "+sc.Name)
			showSteps(w, sc.Steps)
			if len(sc.Examples) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "    "+keywordStyle.Render("Examples:"))
				showTable(w, sc.Examples)
			}
		}
	}
}

func showSteps(w io.Writer, steps []string) {
	for _, step := range steps {
		fmt.Fprintln(w, "    "+styleStep(step))
	}
}

func styleStep(step string) string {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(step, kw) {
			return stepStyle.Render(kw) + step[len(kw):]
		}
	}
	return faintStyle.Render(step)
}

func showTable(w io.Writer, rows []parser.ExampleRow) {
	header := rows[0].Keys()
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, h := range header {
			v, _ := row.Get(h)
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	printRow := func(cells []string) {
		var b strings.Builder
		b.WriteString("      |")
		for i, c := range cells {
			fmt.Fprintf(&b, " %-*s |", widths[i], c)
		}
		fmt.Fprintln(w, b.String())
	}

	printRow(header)
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, h := range header {
			cells[i], _ = row.Get(h)
		}
		printRow(cells)
	}
}
