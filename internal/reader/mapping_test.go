package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping(t *testing.T) {
	t.Run("explicit columns", func(t *testing.T) {
		m, err := LoadMapping(strings.NewReader(`
submission_id: sub_id
comment_id: id
`))
		require.NoError(t, err)
		assert.Equal(t, Mapping{SubmissionColumn: "sub_id", IDColumn: "id"}, m)
	})

	t.Run("defaults", func(t *testing.T) {
		m, err := LoadMapping(strings.NewReader(`comment_id: id`))
		require.NoError(t, err)
		assert.Equal(t, DefaultSubmissionColumn, m.SubmissionColumn)
		assert.Equal(t, "id", m.IDColumn)
	})

	t.Run("empty document", func(t *testing.T) {
		m, err := LoadMapping(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultMapping(), m)
	})

	t.Run("same column twice", func(t *testing.T) {
		_, err := LoadMapping(strings.NewReader("submission_id: x\ncomment_id: x\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadMapping(strings.NewReader("submission_id: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode mapping")
	})
}
