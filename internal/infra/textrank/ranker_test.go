package textrank

import (
	"context"
	"testing"

	"github.com/jinford/cv-matcher/internal/core/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `Experienced software engineer with a strong background in
distributed systems and cloud infrastructure. Designed and operated large
scale data pipelines in Go and Python. Led a platform team building
internal developer tools, improving deployment frequency and reliability.
Deep knowledge of PostgreSQL, message queues, and container orchestration.
Software engineer passionate about data pipelines and developer tools.`

func TestRank_ReturnsRankedTerms(t *testing.T) {
	ranker := New()

	terms, err := ranker.Rank(context.Background(), sampleText, matching.MaxTerms)
	require.NoError(t, err)
	assert.NotEmpty(t, terms)
	assert.LessOrEqual(t, len(terms), matching.MaxTerms)

	// 重複なし
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		_, dup := seen[term]
		assert.False(t, dup, "duplicate term: %s", term)
		seen[term] = struct{}{}
	}
}

func TestRank_Deterministic(t *testing.T) {
	ranker := New()

	first, err := ranker.Rank(context.Background(), sampleText, matching.MaxTerms)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), sampleText, matching.MaxTerms)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRank_TopNCap(t *testing.T) {
	ranker := New()

	terms, err := ranker.Rank(context.Background(), sampleText, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(terms), 5)
}

func TestRank_TopNOutOfBounds(t *testing.T) {
	ranker := New()

	// 上限超過の指定は MaxTerms に丸める
	terms, err := ranker.Rank(context.Background(), sampleText, 1000)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(terms), matching.MaxTerms)

	terms, err = ranker.Rank(context.Background(), sampleText, -1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(terms), matching.MaxTerms)
}

func TestRank_EmptyText(t *testing.T) {
	ranker := New()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "  \n\t "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			terms, err := ranker.Rank(context.Background(), tc.text, matching.MaxTerms)
			require.Error(t, err)
			assert.Nil(t, terms)
			assert.ErrorIs(t, err, matching.ErrInsufficientText)
		})
	}
}
