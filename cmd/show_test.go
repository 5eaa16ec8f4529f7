package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runShow(t *testing.T, path, format string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunShow(&buf, path, format))
	return buf.String()
}

func TestShow_Pretty(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "login.feature", loginFeature)

	out := runShow(t, "login.feature", "pretty")

	assert.Contains(t, out, "Feature: User Login\n")
	assert.Contains(t, out, "  Background:\n    Given the login page is open\n")
	assert.Contains(t, out, "  @smoke\n  Scenario: Successful Login\n")
}

func TestShow_JSON(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "cart.feature", cartFeature)

	out := runShow(t, "cart.feature", "json")

	var got struct {
		Name      string `json:"name"`
		Scenarios []struct {
			Kind     string              `json:"kind"`
			Name     string              `json:"name"`
			Tags     []string            `json:"tags"`
			Steps    []string            `json:"steps"`
			Examples []map[string]string `json:"examples"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Cart", got.Name)
	require.Len(t, got.Scenarios, 2)
	assert.Equal(t, "outline", got.Scenarios[0].Kind)
	assert.Equal(t, []string{"@smoke", "@cart"}, got.Scenarios[0].Tags)
	assert.Equal(t, []map[string]string{{"count": "1"}, {"count": "3"}}, got.Scenarios[0].Examples)
	assert.Equal(t, "scenario", got.Scenarios[1].Kind)
	assert.Nil(t, got.Scenarios[1].Examples)
	assert.Contains(t, out, `"Add <count> items"`)
}

func TestShow_YAML(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "cart.feature", cartFeature)

	out := runShow(t, "cart.feature", "yaml")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Cart", got["name"])
	scenarios, ok := got["scenarios"].([]any)
	require.True(t, ok)
	assert.Len(t, scenarios, 2)
	assert.Contains(t, out, "kind: outline")
}

func TestShow_UnknownFormat(t *testing.T) {
	inTempDir(t)
	writeFeature(t, "login.feature", loginFeature)

	var buf bytes.Buffer
	err := RunShow(&buf, "login.feature", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestShow_MissingFile(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunShow(&buf, "nope.feature", "pretty")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, GetExitCode(err))
}
