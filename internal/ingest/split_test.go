package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitter_RejectsBadSizes(t *testing.T) {
	_, err := NewSplitter(0, 0)
	assert.Error(t, err)

	_, err = NewSplitter(100, 100)
	assert.Error(t, err)

	_, err = NewSplitter(100, -1)
	assert.Error(t, err)
}

func TestSplitter_ShortTextIsOneChunk(t *testing.T) {
	s, err := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	parts, err := s.Split("one short paragraph")
	require.NoError(t, err)
	assert.Equal(t, []string{"one short paragraph"}, parts)
}

func TestSplitter_EmptyText(t *testing.T) {
	s, err := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	parts, err := s.Split("")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestSplitter_RespectsChunkSize(t *testing.T) {
	s, err := NewSplitter(100, 10)
	require.NoError(t, err)

	para := strings.Repeat("word ", 30)
	text := para + "\n\n" + para + "\n\n" + para

	parts, err := s.Split(text)
	require.NoError(t, err)
	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 100)
		assert.NotEmpty(t, p)
	}
}
