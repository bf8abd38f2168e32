package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema は cv-matcher のテーブル定義
//
// comparisons.id は BIGSERIAL に採番を委ねる。採番と挿入が1つの
// ステートメントになるため、並行書き込みでもIDの衝突・欠番・逆行が
// 起きない。空のストアでは1から始まり、プロセス再起動後も
// シーケンスが max(id)+1 相当を引き継ぐ
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS categories (
	category   TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS comparisons (
	id                  BIGSERIAL PRIMARY KEY,
	subject_name        TEXT NOT NULL,
	category            TEXT NOT NULL,
	score               DOUBLE PRECISION NOT NULL,
	subject_terms       JSONB NOT NULL,
	reference_terms     JSONB NOT NULL,
	subject_embedding   vector,
	reference_embedding vector,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_comparisons_category ON comparisons (category);
CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons (created_at);
`

// Migrate はスキーマを適用します
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
