package matching

import "context"

// Extractor は文書からプレーンテキストを抽出する
type Extractor interface {
	Extract(ctx context.Context, doc Document) (string, error)
}

// Ranker はテキストから顕著度順のキーワード列を取り出す
// 返り値の順序は外部ランキング実装の順序をそのまま保持する
type Ranker interface {
	Rank(ctx context.Context, text string, topN int) ([]string, error)
}

// Embedder はテキストをベクトルに変換する
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CategoryStore はカテゴリから参照文書パスを引く
type CategoryStore interface {
	Lookup(ctx context.Context, category string) (string, error)
}

// ReferenceStore はパスから参照文書本体を読み出す
type ReferenceStore interface {
	Fetch(ctx context.Context, path string) (Document, error)
}

// ComparisonStore は比較結果を永続化する
// IDの採番はストア側のシーケンスに委ねる（採番と挿入は分離できない）
type ComparisonStore interface {
	Insert(ctx context.Context, rec NewComparison) (int64, error)
}
