package main

import (
	"log/slog"
	"testing"

	"github.com/DjordjeVuckovic/comment-rank/internal/eval/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	base := runner.Config{K: 10, KValues: []int{1, 5, 10}, Workers: 1}

	tests := []struct {
		name string
		cfg  cliConfig
		want runner.Config
	}{
		{
			name: "no overrides",
			cfg:  cliConfig{},
			want: base,
		},
		{
			name: "workers",
			cfg:  cliConfig{Workers: 8},
			want: runner.Config{K: 10, KValues: []int{1, 5, 10}, Workers: 8},
		},
		{
			name: "k drops larger cutoffs",
			cfg:  cliConfig{K: 5},
			want: runner.Config{K: 5, KValues: []int{1, 5}, Workers: 1},
		},
		{
			name: "k above every cutoff",
			cfg:  cliConfig{K: 20},
			want: runner.Config{K: 20, KValues: []int{1, 5, 10}, Workers: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.apply(base))
		})
	}

	t.Run("no cutoff left", func(t *testing.T) {
		got := cliConfig{K: 3}.apply(runner.Config{K: 10, KValues: []int{5, 10}})
		assert.Equal(t, []int{3}, got.KValues)
	})
}

func TestValidate(t *testing.T) {
	assert.Error(t, cliConfig{}.validate())
	assert.Error(t, cliConfig{SpecPath: "eval.yaml", K: -1}.validate())
	assert.Error(t, cliConfig{SpecPath: "eval.yaml", Workers: -2}.validate())
	assert.NoError(t, cliConfig{SpecPath: "eval.yaml", K: 5, Workers: 2}.validate())
}

func TestLogLevel(t *testing.T) {
	lvl, err := cliConfig{LogLevel: "debug"}.logLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = cliConfig{LogLevel: "WARN"}.logLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = cliConfig{LogLevel: "loud"}.logLevel()
	assert.Error(t, err)
}
