package token

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baka-api/internal/domain/user"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerate_FormatAndUniqueness(t *testing.T) {
	g := New()
	u := &user.User{ID: 1, Username: "a", Email: "a@x.com"}

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := g.Generate(u)
		require.NoError(t, err)
		require.Len(t, tok, 64)
		assert.Regexp(t, `^[0-9a-f]{64}$`, tok)
		assert.NotContains(t, tok, "a@x.com")

		_, dup := seen[tok]
		require.False(t, dup, "duplicate token generated")
		seen[tok] = struct{}{}
	}
}

func TestGenerate_MixesIdentity(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	entropy := bytes.Repeat([]byte{7}, entropySize*2)

	gen := func() *Generator {
		return &Generator{rand: bytes.NewReader(entropy), now: func() time.Time { return fixed }}
	}

	a, err := gen().Generate(&user.User{ID: 1, Username: "a", Email: "a@x.com"})
	require.NoError(t, err)
	again, err := gen().Generate(&user.User{ID: 1, Username: "a", Email: "a@x.com"})
	require.NoError(t, err)
	b, err := gen().Generate(&user.User{ID: 1, Username: "b", Email: "a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, a, again, "same inputs must hash identically")
	assert.NotEqual(t, a, b)
}

func TestGenerate_EntropyFailure(t *testing.T) {
	g := &Generator{rand: failingReader{}, now: time.Now}

	tok, err := g.Generate(&user.User{})
	require.Error(t, err)
	assert.Empty(t, tok)
}
