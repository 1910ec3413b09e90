package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUtterancesDefaults(t *testing.T) {
	got, err := LoadUtterances("")
	require.NoError(t, err)
	assert.Equal(t, DefaultUtterances, got)
	assert.NotEmpty(t, got)
}

func TestLoadUtterancesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utterances.yaml")
	content := "utterances:\n  - выявлены протечки\n  - дефекты окраски стен\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadUtterances(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"выявлены протечки", "дефекты окраски стен"}, got)
}

func TestLoadUtterancesErrors(t *testing.T) {
	_, err := LoadUtterances(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("utterances: []\n"), 0o644))
	_, err = LoadUtterances(empty)
	assert.Error(t, err)
}
