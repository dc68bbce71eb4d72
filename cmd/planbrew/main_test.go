package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a scratch HOME so no
// real config or session leaks in.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	// Package-level flag state survives between runs; reset it.
	exportFormat, exportType, exportSearch, exportWeek, exportOut = "csv", "all", "", 0, ""
	setupTest = false
	configPath, apiURL = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	rootCmd.SetArgs(nil)
	return out.String(), err
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_RejectsFutureWeek(t *testing.T) {
	_, err := execute(t, "export", "--week", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week offset")
}

func TestSetup_RejectsUnknownTool(t *testing.T) {
	_, err := execute(t, "setup", "vim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestDashboard_RequiresSignIn(t *testing.T) {
	_, err := execute(t, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestLogout_WhenSignedOutIsClean(t *testing.T) {
	out, err := execute(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
}
