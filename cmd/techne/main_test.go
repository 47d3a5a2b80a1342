package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	run := func(level string) error {
		app := &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		return app.Run([]string{"techne", "--log-level", level})
	}

	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, run(level))
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		err := run("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestReadDocuments(t *testing.T) {
	t.Run("parses JSONL with blank lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docs.jsonl")
		content := `{"content":"Robotic murals on the facade.","url":"https://example.com/a","title":"A","publish_date":"2024-01-15"}

{"content":"Sensors in the gallery.","url":"https://example.com/b","title":"B"}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		documents, err := readDocuments(path)
		require.NoError(t, err)
		require.Len(t, documents, 2)
		assert.Equal(t, "https://example.com/a", documents[0].URL)
		assert.Equal(t, "2024-01-15", documents[0].PublishDate)
		assert.Equal(t, "Sensors in the gallery.", documents[1].Content)
	})

	t.Run("reports malformed line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0644))

		_, err := readDocuments(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readDocuments(filepath.Join(t.TempDir(), "absent.jsonl"))
		assert.Error(t, err)
	})
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "abcde...", snippet("abcdefgh", 5))
}
