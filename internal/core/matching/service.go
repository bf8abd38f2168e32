package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Service はマッチングパイプライン全体を編成します
// 1リクエストにつき1回のパイプライン実行で、途中状態はすべてローカルに閉じる
type Service struct {
	categories  CategoryStore
	references  ReferenceStore
	extractor   Extractor
	ranker      Ranker
	scorer      *Scorer
	comparisons ComparisonStore
	log         *slog.Logger
}

// NewService は新しい Service を作成します
func NewService(
	categories CategoryStore,
	references ReferenceStore,
	extractor Extractor,
	ranker Ranker,
	scorer *Scorer,
	comparisons ComparisonStore,
	log *slog.Logger,
) *Service {
	return &Service{
		categories:  categories,
		references:  references,
		extractor:   extractor,
		ranker:      ranker,
		scorer:      scorer,
		comparisons: comparisons,
		log:         log,
	}
}

// Match は文書をカテゴリの参照文書と比較し、結果を永続化して返します
//
// 実行順序: カテゴリ解決 → テキスト抽出（両文書並行）→ キーワード抽出（並行）
// → スコア算出 → レコード書き込み。カテゴリ解決を最初に行うのは、未知の
// カテゴリで抽出コストを使わずに即座に失敗させるため。
// 書き込み以外のエラーはその時点でパイプラインを中断する。書き込みだけが
// 失敗した場合は算出済みの結果を劣化扱い（RecordID=nil）で返す。
func (s *Service) Match(ctx context.Context, doc Document, category string) (*MatchResult, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, doc.Name)
	}

	refPath, err := s.categories.Lookup(ctx, category)
	if err != nil {
		return nil, err
	}

	refDoc, err := s.references.Fetch(ctx, refPath)
	if err != nil {
		return nil, err
	}

	subjectText, referenceText, err := s.extractBoth(ctx, doc, refDoc)
	if err != nil {
		return nil, err
	}

	subjectTerms, referenceTerms, err := s.rankBoth(ctx, subjectText, referenceText)
	if err != nil {
		return nil, err
	}

	scored, err := s.scorer.Score(ctx, subjectTerms, referenceTerms)
	if err != nil {
		return nil, err
	}

	result := &MatchResult{
		Score:          scored.Score,
		SubjectTerms:   subjectTerms,
		ReferenceTerms: referenceTerms,
	}

	id, err := s.comparisons.Insert(ctx, NewComparison{
		SubjectName:        doc.Name,
		Category:           category,
		Score:              scored.Score,
		SubjectTerms:       subjectTerms,
		ReferenceTerms:     referenceTerms,
		SubjectEmbedding:   scored.SubjectEmbedding,
		ReferenceEmbedding: scored.ReferenceEmbedding,
	})
	if err != nil {
		// 算出済みのスコアは失わない。書き込み失敗は記録して劣化応答にする
		s.log.Error("failed to record comparison result",
			"subject", doc.Name,
			"category", category,
			"score", scored.Score,
			"error", err,
		)
		result.Degraded = true
		return result, nil
	}

	result.RecordID = &id

	s.log.Info("comparison recorded",
		"recordID", id,
		"subject", doc.Name,
		"category", category,
		"score", scored.Score,
	)

	return result, nil
}

// extractBoth は対象文書と参照文書のテキスト抽出を並行して行います
// 片方でも失敗した場合はパイプライン全体を失敗させる
func (s *Service) extractBoth(ctx context.Context, subject, reference Document) (string, string, error) {
	var (
		wg                         sync.WaitGroup
		subjectText, referenceText string
		subjectErr, referenceErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		subjectText, subjectErr = s.extractor.Extract(ctx, subject)
	}()
	go func() {
		defer wg.Done()
		referenceText, referenceErr = s.extractor.Extract(ctx, reference)
	}()
	wg.Wait()

	if subjectErr != nil {
		return "", "", fmt.Errorf("subject document: %w", subjectErr)
	}
	if referenceErr != nil {
		return "", "", fmt.Errorf("reference document: %w", referenceErr)
	}

	return subjectText, referenceText, nil
}

// rankBoth は両テキストのキーワード抽出を並行して行います
func (s *Service) rankBoth(ctx context.Context, subjectText, referenceText string) ([]string, []string, error) {
	var (
		wg                           sync.WaitGroup
		subjectTerms, referenceTerms []string
		subjectErr, referenceErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		subjectTerms, subjectErr = s.ranker.Rank(ctx, subjectText, MaxTerms)
	}()
	go func() {
		defer wg.Done()
		referenceTerms, referenceErr = s.ranker.Rank(ctx, referenceText, MaxTerms)
	}()
	wg.Wait()

	if subjectErr != nil {
		return nil, nil, fmt.Errorf("subject text: %w", subjectErr)
	}
	if referenceErr != nil {
		return nil, nil, fmt.Errorf("reference text: %w", referenceErr)
	}

	return subjectTerms, referenceTerms, nil
}
