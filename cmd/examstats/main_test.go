package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestNormalizeCmd(t *testing.T) {
	assert.Equal(t, "a\nb\n", run(t, "normalize", `["a", " ", "b"]`))
	assert.Equal(t, "(not applied)\n", run(t, "normalize", "   "))
	assert.Equal(t, "x\ny\n", run(t, "normalize", "x", "", "y"))
}

func TestSeedAndStatsCmd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(dir, "cli.db"))

	fixture := `
[[subjects]]
id = "pt"
name = "Português"
discipline_filter = "Português"

  [[subjects.topics]]
  name = "Gramática"
  filter = ["Gramática"]

[[answers]]
user_id = "u1"
question_id = "q1"
discipline = "Português"
topic_tags = ["Gramática"]
is_correct = true
`
	path := filepath.Join(dir, "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	assert.Contains(t, run(t, "seed", path), "seeded 1 subjects, 0 questions, 1 answers")

	out := run(t, "stats", "--user", "u1", "--subject", "pt")
	assert.Contains(t, out, "Português")
	assert.Contains(t, out, "Gramática")
	assert.Contains(t, out, "100%")
}
