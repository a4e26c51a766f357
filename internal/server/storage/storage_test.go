package storage

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	k := NewKey(now, ".png")
	assert.Regexp(t, regexp.MustCompile(`^covers/2026/3/7/[0-9a-f-]{36}\.png$`), k)
	assert.NotEqual(t, k, NewKey(now, ".png"))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	var _ ImageStore = m

	require.NoError(t, m.Put(ctx, "a", strings.NewReader("x"), 1, "image/png"))
	assert.True(t, m.Has("a"))

	url, err := m.PresignGet(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "https://objects.test/a", url)

	m.DeleteErr = errors.New("down")
	require.Error(t, m.Delete(ctx, "a"))
	assert.Equal(t, 1, m.Len())

	m.DeleteErr = nil
	require.NoError(t, m.Delete(ctx, "a"))
	assert.Zero(t, m.Len())

	_, err = m.PresignGet(ctx, "a")
	require.Error(t, err)
}
