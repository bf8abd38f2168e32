package matching

import "time"

// MaxTerms は1文書あたりのキーワード数の上限
const MaxTerms = 50

// Document は1回のマッチング実行で処理される文書
// パイプライン実行中のみ存在し、永続化は外部（アーカイブ）に委ねる
type Document struct {
	Name      string
	MediaType string
	Data      []byte
}

// CategoryReference はカテゴリラベルと参照文書パスの対応
// 管理コマンドでのみ更新され、パイプラインからは読み取り専用
type CategoryReference struct {
	Category  string
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComparison は永続化前の比較結果
type NewComparison struct {
	SubjectName    string
	Category       string
	Score          float64
	SubjectTerms   []string
	ReferenceTerms []string

	// スコア算出に使った結合テキストのEmbedding（任意）
	// 後からベクトル検索できるようレコードと一緒に保存する
	SubjectEmbedding   []float32
	ReferenceEmbedding []float32
}

// ComparisonRecord は永続化された比較結果
// 一度書き込まれたレコードは更新も削除もされない
type ComparisonRecord struct {
	ID             int64
	SubjectName    string
	Category       string
	Score          float64
	SubjectTerms   []string
	ReferenceTerms []string
	CreatedAt      time.Time
}

// MatchResult はマッチングパイプラインの最終出力
type MatchResult struct {
	Score          float64
	SubjectTerms   []string
	ReferenceTerms []string

	// RecordID は永続化されたレコードのID
	// スコア算出後の書き込みだけが失敗した場合は nil（Degraded=true）
	RecordID *int64
	Degraded bool
}
