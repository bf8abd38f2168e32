// Package filestore はローカルファイルシステム上の文書の読み書きアダプタです
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jinford/cv-matcher/internal/core/matching"
)

// Store は参照文書の読み出しとアップロード文書のアーカイブを提供します
type Store struct {
	uploadDir string
}

// New は新しい Store を作成します
func New(uploadDir string) *Store {
	return &Store{uploadDir: uploadDir}
}

// Fetch はカテゴリストアに登録されたパスから参照文書を読み出します
// 登録済みパスの欠損は管理側の不整合なので、利用者エラーではなく
// ストア障害として扱う
func (s *Store) Fetch(ctx context.Context, path string) (matching.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return matching.Document{}, fmt.Errorf("%w: reference document %s: %v", matching.ErrStoreUnavailable, path, err)
	}

	return matching.Document{
		Name:      filepath.Base(path),
		MediaType: "application/pdf",
		Data:      data,
	}, nil
}

// Archive はアップロードされた文書をアップロードディレクトリに保存し、
// 保存先パスを返します。同名アップロードの衝突を避けるため
// ファイル名にUUIDを前置する
func (s *Store) Archive(ctx context.Context, doc matching.Document) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(doc.Name))
	path := filepath.Join(s.uploadDir, name)

	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to archive document: %w", err)
	}

	return path, nil
}

// インターフェース実装の確認
var _ matching.ReferenceStore = (*Store)(nil)
