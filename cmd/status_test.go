package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftskel/internal/config"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(context.Background(), &buf, config.Default()))
	return buf.String()
}

func TestStatus_WithoutInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunStatus(context.Background(), &buf, config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `ftskel init` first")
}

func TestStatus_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runStatus(t)
	assert.Equal(t, "Files: 0\nScenarios: 0\nup to date\n", out)
}

func TestStatus_CountsAfterSync(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.feature", loginFeature)
	writeFeature(t, "features/cart.feature", cartFeature)
	runSync(t)

	out := runStatus(t)
	assert.Contains(t, out, "Files: 2\n")
	assert.Contains(t, out, "Scenarios: 3\n")
	assert.Contains(t, out, "  scenario: 2\n")
	assert.Contains(t, out, "  outline: 1\n")
	assert.Contains(t, out, "up to date\n")
}

func TestStatus_ReportsPendingChanges(t *testing.T) {
	inTempDir(t)
	runInit(t)
	login := filepath.Join("features", "login.feature")
	cart := filepath.Join("features", "cart.feature")
	writeFeature(t, login, loginFeature)
	writeFeature(t, cart, cartFeature)
	runSync(t)

	writeFeature(t, login, loginFeature+"\n  Scenario: Logout\n    When the user logs out\n")
	require.NoError(t, os.Remove(cart))
	search := filepath.Join("features", "search.feature")
	writeFeature(t, search, "Feature: Search\n")

	out := runStatus(t)
	assert.Contains(t, out, "upd  "+login)
	assert.Contains(t, out, "del  "+cart)
	assert.Contains(t, out, "new  "+search)
	assert.NotContains(t, out, "up to date")

	_, err := os.Stat(filepath.Join("features", "search.spec.js"))
	assert.True(t, os.IsNotExist(err), "status must not write output")
}
