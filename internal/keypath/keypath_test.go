package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("single segment", func(t *testing.T) {
		p, err := Parse("platforms")
		require.NoError(t, err)
		assert.Equal(t, Path{"platforms"}, p)
	})

	t.Run("nested path", func(t *testing.T) {
		p, err := Parse("shell.packages")
		require.NoError(t, err)
		assert.Equal(t, Path{"shell", "packages"}, p)
		assert.Equal(t, "shell.packages", p.String())
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := Parse("")
		assert.ErrorContains(t, err, "must not be empty")
	})

	t.Run("empty segment rejected", func(t *testing.T) {
		_, err := Parse("shell..packages")
		assert.ErrorContains(t, err, "empty segment")

		_, err = Parse(".shell")
		assert.Error(t, err)
	})
}

func TestChild(t *testing.T) {
	p := MustParse("artifact.shell")
	child := p.Child("default")

	assert.Equal(t, "artifact.shell.default", child.String())
	assert.Equal(t, "artifact.shell", p.String(), "receiver must not change")
}

func TestEqual(t *testing.T) {
	assert.True(t, MustParse("a.b").Equal(MustParse("a.b")))
	assert.False(t, MustParse("a.b").Equal(MustParse("a.c")))
	assert.False(t, MustParse("a").Equal(MustParse("a.b")))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}
