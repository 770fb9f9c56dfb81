package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBadWordNormalizesAndDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	newRegisteredGuild(t, s, "100")

	added, err := s.AddBadWord(ctx, "100", "  SPAM ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddBadWord(ctx, "100", "spam")
	require.NoError(t, err)
	assert.False(t, added)

	words, err := s.BadWords(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, []string{"spam"}, words)
}

func TestRemoveBadWord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	newRegisteredGuild(t, s, "100")

	_, err := s.AddBadWord(ctx, "100", "spam")
	require.NoError(t, err)

	removed, err := s.RemoveBadWord(ctx, "100", "SPAM")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveBadWord(ctx, "100", "spam")
	require.NoError(t, err)
	assert.False(t, removed)

	words, err := s.BadWords(ctx, "100")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestBadWordsArePerGuild(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	newRegisteredGuild(t, s, "100")
	newRegisteredGuild(t, s, "200")

	_, err := s.AddBadWord(ctx, "100", "spam")
	require.NoError(t, err)

	words, err := s.BadWords(ctx, "200")
	require.NoError(t, err)
	assert.Empty(t, words)
}
