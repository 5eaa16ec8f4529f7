package parser

import (
	"strings"
	"testing"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-formed files must agree with the reference cucumber parser on names,
// tags, step text and example rows.
const conformanceFeature = `Feature: Shopping cart

  Background:
    Given an empty cart

  @smoke @cart
  Scenario: Add one item
    Given a product "apple" priced 1.50
    When I add it to the cart
    Then the cart total is 1.50

  @outline
  Scenario Outline: Add several items
    Given a product "<name>" priced <price>
    When I add <count> of it to the cart
    Then the cart has <count> items

    Examples:
      | name   | price | count |
      | apple  | 1.50  | 2     |
      | banana | 0.25  | 12    |
`

func referenceDocument(t *testing.T, content string) *messages.GherkinDocument {
	t.Helper()
	doc, err := gherkin.ParseGherkinDocument(strings.NewReader(content), (&messages.Incrementing{}).NewId)
	require.NoError(t, err)
	require.NotNil(t, doc.Feature)
	return doc
}

func referenceSteps(steps []*messages.Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Keyword+s.Text)
	}
	return out
}

func TestParse_MatchesReferenceParser(t *testing.T) {
	ref := referenceDocument(t, conformanceFeature)
	f := parseText(conformanceFeature)

	assert.Equal(t, ref.Feature.Name, f.Name)

	var refScenarios []*messages.Scenario
	for _, child := range ref.Feature.Children {
		switch {
		case child.Background != nil:
			require.NotNil(t, f.Background)
			assert.Equal(t, referenceSteps(child.Background.Steps), f.Background.Steps)
		case child.Scenario != nil:
			refScenarios = append(refScenarios, child.Scenario)
		}
	}

	require.Len(t, f.Scenarios, len(refScenarios))
	for i, rs := range refScenarios {
		def := f.Scenarios[i]
		assert.Equal(t, rs.Name, def.Title())
		assert.Equal(t, referenceSteps(rs.Steps), def.StepLines())

		var tags []string
		for _, tag := range rs.Tags {
			tags = append(tags, tag.Name)
		}
		assert.Equal(t, tags, def.TagNames())

		if len(rs.Examples) == 0 {
			assert.Equal(t, KindScenario, def.Kind())
			continue
		}

		outline, ok := def.(*ScenarioOutline)
		require.True(t, ok)
		examples := rs.Examples[0]
		require.Len(t, outline.Examples, len(examples.TableBody))
		for r, row := range examples.TableBody {
			for c, cell := range row.Cells {
				header := examples.TableHeader.Cells[c].Value
				got, ok := outline.Examples[r].Get(header)
				require.True(t, ok, header)
				assert.Equal(t, cell.Value, got)
			}
		}
	}
}
