package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fotosort/internal/config"
	"fotosort/internal/errors"
	"fotosort/internal/triage"
	"fotosort/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "fotosort dev\n", out.String())
}

func TestRootRequiresFiles(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestRootNoValidImages(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"notes.txt": "x"})

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "absent.yaml"),
		"--dest", dir,
		filepath.Join(dir, "notes.txt"),
	})
	err := cmd.Execute()
	assert.ErrorIs(t, err, errors.ErrNoImages)
}

func TestRootBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "settings:\n  collision: explode\n")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, filepath.Join(dir, "a.png")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "settings:\n  default_mode: move\n  watch: true\n")

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.Flags().Set("config", cfgPath))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.True(t, cfg.MoveByDefault())
	assert.True(t, cfg.Settings.Watch)

	require.NoError(t, cmd.Flags().Set("move", "false"))
	require.NoError(t, cmd.Flags().Set("watch", "false"))
	require.NoError(t, cmd.Flags().Set("dest", dir))
	cfg, err = loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.False(t, cfg.MoveByDefault(), "--move=false switches back to copying")
	assert.False(t, cfg.Settings.Watch)
	assert.Equal(t, dir, cfg.Settings.DestinationRoot)
}

func TestNewSession(t *testing.T) {
	dir := t.TempDir()
	imgs := testutils.CreateTestImages(t, dir, "a.png", "b.jpg", "c.png")
	cfg := config.NewTestConfig(dir)
	cfg.Filter.Exclude = []string{"*.jpg"}

	session, paths, err := newSession(cfg, append(imgs, filepath.Join(dir, "missing.png")))
	require.NoError(t, err)
	assert.Equal(t, []string{imgs[0], imgs[2]}, paths)
	assert.Equal(t, triage.Copy, session.DefaultMode())
	assert.Equal(t, "Image 1/2", session.Position())

	cfg.Settings.DefaultMode = config.ModeMove
	session, _, err = newSession(cfg, imgs)
	require.NoError(t, err)
	assert.Equal(t, triage.Move, session.DefaultMode())
}

func TestReportExit(t *testing.T) {
	var out bytes.Buffer
	s := triage.New([]string{"a.jpg", "b.jpg"}, triage.Copy, nil)
	s.Handle(triage.On(triage.Quit), triage.Modifiers{})
	reportExit(&out, s)
	assert.Equal(t, "Quit with 2 image(s) left.\n", out.String())

	out.Reset()
	reportExit(&out, triage.New(nil, triage.Copy, nil))
	assert.Contains(t, out.String(), "All images processed.")
}
