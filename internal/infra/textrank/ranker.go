// Package textrank は TextRank ライブラリを使ったキーワード抽出アダプタです
// ランキングアルゴリズム自体はライブラリに委ね、このアダプタは
// 空入力の拒否・件数上限・重複排除だけを担う
package textrank

import (
	"context"
	"fmt"
	"strings"

	textrank "github.com/DavidBelicza/TextRank/v2"
	"github.com/jinford/cv-matcher/internal/core/matching"
)

// Ranker は matching.Ranker の TextRank 実装
type Ranker struct{}

// New は新しい Ranker を作成する
func New() *Ranker {
	return &Ranker{}
}

// Rank はテキストから顕著度の高い順にキーワードを最大 topN 件返す
// 並び順はライブラリのランキング結果をそのまま保持し、並べ替えは行わない。
// 複合語（2語フレーズ）を優先し、残り枠を単語で埋める
func (r *Ranker) Rank(ctx context.Context, text string, topN int) (terms []string, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", matching.ErrInsufficientText)
	}
	if topN <= 0 || topN > matching.MaxTerms {
		topN = matching.MaxTerms
	}

	// ライブラリ内部のpanicをリクエスト全体の停止にしない
	defer func() {
		if rec := recover(); rec != nil {
			terms = nil
			err = fmt.Errorf("%w: %v", matching.ErrRankerFailure, rec)
		}
	}()

	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	seen := make(map[string]struct{}, topN)
	terms = make([]string, 0, topN)
	add := func(term string) {
		if len(terms) >= topN {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, phrase := range textrank.FindPhrases(tr) {
		add(phrase.Left + " " + phrase.Right)
		if len(terms) >= topN {
			break
		}
	}
	for _, word := range textrank.FindSingleWords(tr) {
		add(word.Word)
		if len(terms) >= topN {
			break
		}
	}

	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no rankable terms", matching.ErrInsufficientText)
	}

	return terms, nil
}

// インターフェース実装の確認
var _ matching.Ranker = (*Ranker)(nil)
