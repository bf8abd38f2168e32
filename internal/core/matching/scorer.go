package matching

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// scoreEpsilon は浮動小数点誤差として許容する範囲超過量
const scoreEpsilon = 1e-6

// ScoreResult はスコアと算出に使ったEmbeddingベクトル
type ScoreResult struct {
	Score              float64
	SubjectEmbedding   []float32
	ReferenceEmbedding []float32
}

// Scorer は2つのキーワード列の意味的類似度を算出する
// キャッシュは持たず、呼び出しごとに両方のEmbeddingを計算し直す
type Scorer struct {
	embedder Embedder
}

// NewScorer は新しい Scorer を作成する
func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score はキーワード列同士のコサイン類似度を算出する
// 各キーワード列は順序を保ったままスペース結合され、1つのテキストとして
// Embeddingされる。結合順がスコアに影響するのは上流ランキングの性質を
// そのまま引き継いだもの
func (s *Scorer) Score(ctx context.Context, termsA, termsB []string) (*ScoreResult, error) {
	textA := strings.TrimSpace(strings.Join(termsA, " "))
	textB := strings.TrimSpace(strings.Join(termsB, " "))
	if textA == "" || textB == "" {
		return nil, fmt.Errorf("%w: joined term text is empty", ErrEmbeddingUnavailable)
	}

	vecA, err := s.embedder.Embed(ctx, textA)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	vecB, err := s.embedder.Embed(ctx, textB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	score, err := cosineSimilarity(vecA, vecB)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		Score:              score,
		SubjectEmbedding:   vecA,
		ReferenceEmbedding: vecB,
	}, nil
}

// cosineSimilarity は2つのベクトルのコサイン類似度を計算する
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: vector dimensions mismatch (%d vs %d)", ErrEmbeddingUnavailable, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: zero-magnitude embedding vector", ErrEmbeddingUnavailable)
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if score > 1+scoreEpsilon || score < -1-scoreEpsilon || math.IsNaN(score) {
		return 0, fmt.Errorf("%w: got %v", ErrScoreOutOfRange, score)
	}

	return score, nil
}
