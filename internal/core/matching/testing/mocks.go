package testing

import (
	"context"

	"github.com/jinford/cv-matcher/internal/core/matching"
)

// MockCategoryStore はテスト用のモックCategoryStoreです
type MockCategoryStore struct {
	LookupFunc func(ctx context.Context, category string) (string, error)
}

func (m *MockCategoryStore) Lookup(ctx context.Context, category string) (string, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, category)
	}
	return "", nil
}

// MockReferenceStore はテスト用のモックReferenceStoreです
type MockReferenceStore struct {
	FetchFunc func(ctx context.Context, path string) (matching.Document, error)
}

func (m *MockReferenceStore) Fetch(ctx context.Context, path string) (matching.Document, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, path)
	}
	return matching.Document{}, nil
}

// MockExtractor はテスト用のモックExtractorです
type MockExtractor struct {
	ExtractFunc func(ctx context.Context, doc matching.Document) (string, error)
}

func (m *MockExtractor) Extract(ctx context.Context, doc matching.Document) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, doc)
	}
	return "", nil
}

// MockRanker はテスト用のモックRankerです
type MockRanker struct {
	RankFunc func(ctx context.Context, text string, topN int) ([]string, error)
}

func (m *MockRanker) Rank(ctx context.Context, text string, topN int) ([]string, error) {
	if m.RankFunc != nil {
		return m.RankFunc(ctx, text, topN)
	}
	return nil, nil
}

// MockEmbedder はテスト用のモックEmbedderです
type MockEmbedder struct {
	EmbedFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return nil, nil
}

// MockComparisonStore はテスト用のモックComparisonStoreです
type MockComparisonStore struct {
	InsertFunc func(ctx context.Context, rec matching.NewComparison) (int64, error)

	// Inserted には InsertFunc 実行前の引数が記録される
	Inserted []matching.NewComparison
}

func (m *MockComparisonStore) Insert(ctx context.Context, rec matching.NewComparison) (int64, error) {
	m.Inserted = append(m.Inserted, rec)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rec)
	}
	return int64(len(m.Inserted)), nil
}

// インターフェース実装の確認
var (
	_ matching.CategoryStore   = (*MockCategoryStore)(nil)
	_ matching.ReferenceStore  = (*MockReferenceStore)(nil)
	_ matching.Extractor       = (*MockExtractor)(nil)
	_ matching.Ranker          = (*MockRanker)(nil)
	_ matching.Embedder        = (*MockEmbedder)(nil)
	_ matching.ComparisonStore = (*MockComparisonStore)(nil)
)
