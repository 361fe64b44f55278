package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInteractiveWith(t *testing.T, input string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestInteractive_ResolveAndExit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := runInteractiveWith(t, "BRCA1 TP53\nexit\n")

	assert.Contains(t, out, "Genedex interactive mode.")
	assert.Contains(t, out, "BRCA1 | Entrez:672")
	assert.Contains(t, out, "TP53 | Entrez:7157")
	assert.Contains(t, out, "Bye.")
}

func TestInteractive_NotFoundKeepsLooping(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := runInteractiveWith(t, "FAKEGENE123\nBRCA1\nquit\n")

	assert.Contains(t, out, "Gene not found: FAKEGENE123")
	assert.Contains(t, out, "BRCA1 | Entrez:672")
	assert.Contains(t, out, "Bye.")
}

func TestInteractive_Help(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := runInteractiveWith(t, "help\nexit\n")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "exit, quit")
}

func TestInteractive_BlankLinesIgnored(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := runInteractiveWith(t, "\n\nexit\n")
	assert.Contains(t, out, "Bye.")
	assert.NotContains(t, out, "Gene not found")
}

func TestInteractive_EOFEndsLoop(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := runInteractiveWith(t, "BRCA1\n")
	assert.Contains(t, out, "BRCA1 | Entrez:672")
}
