package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidateCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommandValidTemplates(t *testing.T) {
	dir := t.TempDir()
	templates := writeTemplatesDir(t, dir)

	out, err := runValidateCmd(t, "text", templates)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 3 template(s) valid")
}

func TestValidateCommandBrokenTemplates(t *testing.T) {
	dir := t.TempDir()
	templates := writeBrokenTemplatesDir(t, dir)

	out, err := runValidateCmd(t, "text", templates)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "[E101]")
	assert.Contains(t, out, "name is required")
}

func TestValidateCommandBrokenTemplatesJSON(t *testing.T) {
	dir := t.TempDir()
	templates := writeBrokenTemplatesDir(t, dir)

	out, err := runValidateCmd(t, "json", templates)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string             `json:"status"`
		Data   TemplateValidation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "E101", resp.Data.Errors[0].Code)
}

func TestValidateCommandMissingDir(t *testing.T) {
	out, err := runValidateCmd(t, "text", "/nonexistent/templates")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E005")
}

func TestValidateCommandEmptyDir(t *testing.T) {
	dir := t.TempDir()

	out, err := runValidateCmd(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E003")
}
