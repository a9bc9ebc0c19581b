package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		t.Setenv(PathVar, "")
		t.Setenv("COMMENT_RANK_TEST_A", "")
		os.Unsetenv("COMMENT_RANK_TEST_A")

		path := writeEnv(t, "COMMENT_RANK_TEST_A=from-file\n")
		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("COMMENT_RANK_TEST_A"))
	})

	t.Run("ENV_PATH wins over default", func(t *testing.T) {
		t.Setenv("COMMENT_RANK_TEST_B", "")
		os.Unsetenv("COMMENT_RANK_TEST_B")

		t.Setenv(PathVar, writeEnv(t, "COMMENT_RANK_TEST_B=explicit\n"))
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
		assert.Equal(t, "explicit", os.Getenv("COMMENT_RANK_TEST_B"))
	})

	t.Run("process environment is not overridden", func(t *testing.T) {
		t.Setenv(PathVar, "")
		t.Setenv("COMMENT_RANK_TEST_C", "process")

		require.NoError(t, LoadDotEnv(writeEnv(t, "COMMENT_RANK_TEST_C=file\n")))
		assert.Equal(t, "process", os.Getenv("COMMENT_RANK_TEST_C"))
	})

	t.Run("missing default file is skipped", func(t *testing.T) {
		t.Setenv(PathVar, "")
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		t.Setenv(PathVar, filepath.Join(t.TempDir(), "absent.env"))
		err := LoadDotEnv(".env")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absent.env")
	})
}
