package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration(""))
	assert.Equal(t, 5*time.Minute, ParseDuration("not-a-duration"))
	assert.Equal(t, 5*time.Minute, ParseDuration("-1s"))
	assert.Equal(t, 90*time.Second, ParseDuration("1m30s"))
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "  ", "NA", "NaN", "nan", "<nil>", "null"} {
		assert.True(t, IsMissing(v), "%q should be missing", v)
	}
	for _, v := range []string{"Male", "0", "None at all"} {
		assert.False(t, IsMissing(v), "%q should not be missing", v)
	}
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "Canal St & Adams St", CleanValue("  Canal St & Adams St "))
	assert.Equal(t, "", CleanValue("NaN"))
}

func TestOutputManager(t *testing.T) {
	base := t.TempDir()
	om := NewOutputManager(base)

	path, err := om.GetOutputFilePath("q-1", "../../escape.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "q-1", "escape.csv"), path)

	_, err = om.ResolveFile("q-1", "escape.csv")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))
	resolved, err := om.ResolveFile("q-1", "escape.csv")
	require.NoError(t, err)
	assert.Equal(t, path, resolved)

	assert.Equal(t, "/api/v1/download/q-1/escape.csv", om.GetDownloadURL("q-1", "escape.csv"))
	assert.Equal(t, "csv", om.GetFileType("report.CSV"))
	assert.Equal(t, "json", om.GetFileType("rows.json"))
	assert.Equal(t, "unknown", om.GetFileType("notes.txt"))
}
