package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinford/cv-matcher/internal/core/matching"
)

// CategoryRepository はカテゴリと参照文書パスの対応を管理します
// パイプラインからは Lookup のみが呼ばれ、更新系は管理コマンド専用
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository は新しいCategoryRepositoryを作成します
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Lookup はカテゴリに対応する参照文書パスを返します
// 行が存在しない場合（利用者の入力ミス）とストア障害は呼び出し側で
// 区別できるよう、別々のエラーにラップする
func (r *CategoryRepository) Lookup(ctx context.Context, category string) (string, error) {
	query := `
		SELECT path
		FROM categories
		WHERE category = $1
	`

	var path string
	err := r.pool.QueryRow(ctx, query, category).Scan(&path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", matching.ErrCategoryNotFound, category)
		}
		return "", fmt.Errorf("%w: failed to lookup category: %v", matching.ErrStoreUnavailable, err)
	}

	return path, nil
}

// Upsert はカテゴリの参照文書パスを登録または更新します（冪等）
func (r *CategoryRepository) Upsert(ctx context.Context, category, path string) error {
	query := `
		INSERT INTO categories (category, path)
		VALUES ($1, $2)
		ON CONFLICT (category) DO UPDATE SET
			path = EXCLUDED.path,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.pool.Exec(ctx, query, category, path); err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}

	return nil
}

// List はすべてのカテゴリを取得します
func (r *CategoryRepository) List(ctx context.Context) ([]*matching.CategoryReference, error) {
	query := `
		SELECT category, path, created_at, updated_at
		FROM categories
		ORDER BY category
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var refs []*matching.CategoryReference
	for rows.Next() {
		var ref matching.CategoryReference
		if err := rows.Scan(&ref.Category, &ref.Path, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		refs = append(refs, &ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return refs, nil
}

// インターフェース実装の確認
var _ matching.CategoryStore = (*CategoryRepository)(nil)
