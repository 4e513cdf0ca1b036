package main_test

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adconv"
	main "github.com/fwojciec/adconv/cmd/adconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*main.CLI, error) {
	t.Helper()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Configuration(main.YAML))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return cli, err
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli, err := parse(t)

	require.NoError(t, err)
	assert.Equal(t, "backend/website", cli.Input)
	assert.Equal(t, "backend/json", cli.Output)
	assert.Equal(t, "backend/parsed.log", cli.Ledger)
	assert.Empty(t, cli.LedgerDB)
	assert.Equal(t, "backend/logs", cli.LogDir)
	assert.Equal(t, "daily", cli.LogLayout)
	assert.Equal(t, adconv.ImageModeMediaAttribute, cli.ImageMode)
	assert.Equal(t, adconv.PolicyContinue, cli.Policy)
}

func TestCLI_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts every supported value", func(t *testing.T) {
		t.Parallel()

		_, err := parse(t, "--image-mode", "gallery-src-filter", "--policy", "fail-fast", "--log-layout", "document")

		assert.NoError(t, err)
	})

	t.Run("rejects an unknown image mode", func(t *testing.T) {
		t.Parallel()

		_, err := parse(t, "--image-mode", "carousel")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown image mode")
	})
}

func TestYAML(t *testing.T) {
	t.Parallel()

	t.Run("resolves underscore keys", func(t *testing.T) {
		t.Parallel()

		r, err := main.YAML(strings.NewReader("log_dir: /var/log/adconv\npolicy: fail-fast\n"))

		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("accepts an empty document", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAML(strings.NewReader(""))

		assert.NoError(t, err)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAML(strings.NewReader("input: [unterminated"))

		assert.Error(t, err)
	})
}
