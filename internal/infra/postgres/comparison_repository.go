package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinford/cv-matcher/internal/core/matching"
	pgvector "github.com/pgvector/pgvector-go"
)

// ComparisonRepository は比較結果レコードを管理します
// レコードは追記専用で、更新も削除も行わない
type ComparisonRepository struct {
	pool *pgxpool.Pool
}

// NewComparisonRepository は新しいComparisonRepositoryを作成します
func NewComparisonRepository(pool *pgxpool.Pool) *ComparisonRepository {
	return &ComparisonRepository{pool: pool}
}

// Insert は比較結果を書き込み、ストアが採番したIDを返します
// INSERT ... RETURNING id の1ステートメントで採番と挿入が完結するため、
// 並行呼び出しでもIDが衝突することはない
func (r *ComparisonRepository) Insert(ctx context.Context, rec matching.NewComparison) (int64, error) {
	query := `
		INSERT INTO comparisons (
			subject_name, category, score,
			subject_terms, reference_terms,
			subject_embedding, reference_embedding
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		rec.SubjectName,
		rec.Category,
		rec.Score,
		JSONBFromStringSlice(rec.SubjectTerms),
		JSONBFromStringSlice(rec.ReferenceTerms),
		VectorOrNil(rec.SubjectEmbedding),
		VectorOrNil(rec.ReferenceEmbedding),
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			// BIGSERIAL採番では本来起きない。シーケンスとデータの不整合を示す
			return 0, fmt.Errorf("%w: duplicate record id: %v", matching.ErrPersistence, err)
		}
		return 0, fmt.Errorf("%w: %v", matching.ErrPersistence, err)
	}

	return id, nil
}

// Get はIDで比較結果を取得します
func (r *ComparisonRepository) Get(ctx context.Context, id int64) (*matching.ComparisonRecord, error) {
	query := `
		SELECT id, subject_name, category, score, subject_terms, reference_terms, created_at
		FROM comparisons
		WHERE id = $1
	`

	var (
		rec            matching.ComparisonRecord
		subjectTerms   []byte
		referenceTerms []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.SubjectName,
		&rec.Category,
		&rec.Score,
		&subjectTerms,
		&referenceTerms,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("comparison record not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get comparison record: %w", err)
	}

	rec.SubjectTerms = StringSliceFromJSONB(subjectTerms)
	rec.ReferenceTerms = StringSliceFromJSONB(referenceTerms)

	return &rec, nil
}

// List は新しい順に最大 limit 件の比較結果を取得します
func (r *ComparisonRepository) List(ctx context.Context, limit int) ([]*matching.ComparisonRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, subject_name, category, score, subject_terms, reference_terms, created_at
		FROM comparisons
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparison records: %w", err)
	}
	defer rows.Close()

	var records []*matching.ComparisonRecord
	for rows.Next() {
		var (
			rec            matching.ComparisonRecord
			subjectTerms   []byte
			referenceTerms []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SubjectName,
			&rec.Category,
			&rec.Score,
			&subjectTerms,
			&referenceTerms,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comparison record: %w", err)
		}
		rec.SubjectTerms = StringSliceFromJSONB(subjectTerms)
		rec.ReferenceTerms = StringSliceFromJSONB(referenceTerms)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comparison records: %w", err)
	}

	return records, nil
}

// MaxID は採番済みの最大IDを返します（空のストアでは0）
func (r *ComparisonRepository) MaxID(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(MAX(id), 0) FROM comparisons`

	var maxID int64
	if err := r.pool.QueryRow(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to get max comparison id: %w", err)
	}

	return maxID, nil
}

// VectorOrNil は空スライスをNULLとして扱うpgvector変換です
func VectorOrNil(vec []float32) any {
	if len(vec) == 0 {
		return nil
	}
	return pgvector.NewVector(vec)
}

// インターフェース実装の確認
var _ matching.ComparisonStore = (*ComparisonRepository)(nil)
