// Package generator turns a parsed Feature into a skeleton test file for a
// describe/it style JavaScript test runner.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chriserin/ftskel/internal/parser"
)

type Runner string

const (
	RunnerMocha Runner = "mocha"
	RunnerJest  Runner = "jest"
)

// ValidRunners returns every supported runner.
func ValidRunners() []Runner {
	return []Runner{RunnerMocha, RunnerJest}
}

func (r Runner) IsValid() bool {
	switch r {
	case RunnerMocha, RunnerJest:
		return true
	default:
		return false
	}
}

type Options struct {
	Runner Runner
	Indent string
}

func DefaultOptions() Options {
	return Options{Runner: RunnerMocha, Indent: "  "}
}

// Generate renders f with the default options.
func Generate(f *parser.Feature) string {
	return GenerateWith(f, DefaultOptions())
}

// GenerateWith renders f as test source. It never fails; an empty Feature
// yields the preamble and an empty describe block.
func GenerateWith(f *parser.Feature, opts Options) string {
	return strings.Join(Lines(f, opts), "\n")
}

// Lines renders f as individual output lines.
func Lines(f *parser.Feature, opts Options) []string {
	if f == nil {
		f = &parser.Feature{}
	}
	if !opts.Runner.IsValid() {
		opts.Runner = RunnerMocha
	}
	if opts.Indent == "" {
		opts.Indent = DefaultOptions().Indent
	}

	g := &emitter{opts: opts}
	g.preamble()
	g.emit(0, "")
	g.emit(0, fmt.Sprintf("describe(%s, () => {", jsString("Feature: "+f.Name)))

	if bg := f.Background; bg != nil && len(bg.Steps) > 0 {
		g.testCase("Background: "+bg.Steps[0], bg.Steps, mergeVariables(bg.Steps))
	}

	for _, def := range f.Scenarios {
		switch sc := def.(type) {
		case *parser.Scenario:
			g.testCase(sc.Name, sc.Steps, mergeVariables(sc.Steps))
		case *parser.ScenarioOutline:
			rows := sc.Examples
			if rows == nil {
				rows = []parser.ExampleRow{}
			}
			g.testCase("Scenario Outline: "+sc.Name, sc.Steps, rows)
		}
	}

	g.emit(0, "});")
	return g.lines
}

type emitter struct {
	opts  Options
	lines []string
	cases int
}

func (g *emitter) emit(depth int, text string) {
	if text == "" {
		g.lines = append(g.lines, "")
		return
	}
	g.lines = append(g.lines, strings.Repeat(g.opts.Indent, depth)+text)
}

func (g *emitter) preamble() {
	switch g.opts.Runner {
	case RunnerJest:
		g.emit(0, `const { describe, test, expect } = require("@jest/globals");`)
	default:
		g.emit(0, `const { describe, it } = require("mocha");`)
		g.emit(0, `const { expect } = require("chai");`)
	}
}

func (g *emitter) caseFunc() string {
	if g.opts.Runner == RunnerJest {
		return "test"
	}
	return "it"
}

func (g *emitter) testCase(title string, steps []string, data any) {
	if g.cases > 0 {
		g.emit(0, "")
	}
	g.cases++

	g.emit(1, fmt.Sprintf("%s(%s, () => {", g.caseFunc(), jsString(title)))
	for _, step := range steps {
		g.emit(2, strings.TrimRight("// "+step, " "))
	}
	g.emit(0, "")

	g.emit(2, "const data = "+g.literal(data)+";")
	g.emit(1, "});")
}

// literal renders v as indented JSON aligned with the test body.
func (g *emitter) literal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(strings.Repeat(g.opts.Indent, 2), g.opts.Indent)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// jsString quotes s as a JSON string, which is also a valid JavaScript literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
