package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiresFlagsAndArgs(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(f, []byte("match me\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-E", "--color=never", "match", f})

	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestRootCommandReturnsExitErrorWhenNoMatch(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(f, []byte("nothing here\n"), 0o644))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"-E", "zzz-not-present", f})

	err := cmd.Execute()
	require.Error(t, err)
	code, isRealError := exitCodeOf(err)
	assert.Equal(t, 1, code)
	assert.False(t, isRealError)
}
