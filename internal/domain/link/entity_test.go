package link

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresOwner(t *testing.T) {
	l, err := New(0, Link{Destination: "https://example.com"})
	require.ErrorIs(t, err, ErrMissingOwner)
	assert.Nil(t, l)

	l, err = New(3, Link{Destination: "https://example.com", Timestamp: time.Unix(1, 0)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.UploaderID())
	assert.Equal(t, "116444736010000000", l.Epoch())
}
