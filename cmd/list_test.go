package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftskel/internal/config"
)

const cartFeature = `Feature: Cart
  @smoke @cart
  Scenario Outline: Add <count> items
    Given an empty cart
    When I add <count> items
    Examples:
      | count |
      | 1     |
      | 3     |

  @cart
  Scenario: Empty cart
    Then the cart shows "empty"
`

func runList(t *testing.T, kind, tag string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(context.Background(), &buf, config.Default(), kind, tag))
	return buf.String()
}

func setupListProject(t *testing.T) {
	t.Helper()
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	writeFeature(t, "features/cart.feature", cartFeature)
	runSync(t)
}

func TestList_AllScenarios(t *testing.T) {
	setupListProject(t)

	out := runList(t, "", "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "cart.feature")
	assert.Contains(t, lines[0], "outline")
	assert.Contains(t, lines[0], "Add <count> items")
	assert.Contains(t, lines[0], "@smoke @cart")
	assert.Contains(t, lines[1], "Empty cart")
	assert.Contains(t, lines[2], "login.feature")
	assert.Contains(t, lines[2], "Successful Login")
}

func TestList_ColumnsAligned(t *testing.T) {
	setupListProject(t)

	out := runList(t, "", "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	col := strings.Index(lines[0], "outline")
	assert.Equal(t, col, strings.Index(lines[1], "scenario"))
	assert.Equal(t, col, strings.Index(lines[2], "scenario"))
}

func TestList_FilterByKind(t *testing.T) {
	setupListProject(t)

	out := runList(t, "outline", "")
	assert.Contains(t, out, "Add <count> items")
	assert.NotContains(t, out, "Empty cart")
	assert.NotContains(t, out, "Successful Login")
}

func TestList_FilterByTag(t *testing.T) {
	setupListProject(t)

	out := runList(t, "", "@smoke")
	assert.Contains(t, out, "Add <count> items")
	assert.Contains(t, out, "Successful Login")
	assert.NotContains(t, out, "Empty cart")
}

func TestList_NoMatches(t *testing.T) {
	setupListProject(t)

	assert.Empty(t, runList(t, "", "@missing"))
}

func TestList_InvalidKind(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunList(context.Background(), &buf, config.Default(), "step", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid kind "step"`)
}

func TestList_WithoutInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunList(context.Background(), &buf, config.Default(), "", "")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}
