package errscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionary(t *testing.T) {
	t.Run("yaml scalar and mapping", func(t *testing.T) {
		dict, err := ParseDictionary([]byte("NotFound: 404\nConflict:\n  status: 409\n  msg: already exists\n"))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"NotFound": 404, "Conflict": 409}, dict)
	})

	t.Run("json", func(t *testing.T) {
		dict, err := ParseDictionary([]byte(`{"Internal": {"status": 500}, "BadRequest": 400}`))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"Internal": 500, "BadRequest": 400}, dict)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, data := range []string{"NotFound: [404]", "NotFound: abc", "NotFound: 42", "Conflict: {}"} {
			_, err := ParseDictionary([]byte(data))
			assert.Error(t, err, data)
		}
	})
}

func TestLoadDictionary(t *testing.T) {
	name := filepath.Join(t.TempDir(), "errors.yml")
	require.NoError(t, os.WriteFile(name, []byte("NotFound: 404\n"), 0o644))

	dict, err := LoadDictionary(name)
	require.NoError(t, err)
	assert.Equal(t, 404, dict["NotFound"])

	_, err = LoadDictionary(name + ".missing")
	assert.Error(t, err)
}
