// Package pdftotext は poppler の pdftotext コマンドを使った
// テキスト抽出アダプタです
package pdftotext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jinford/cv-matcher/internal/core/matching"
)

// ErrPDFToolNotFound は pdftotext コマンドが見つからない場合のエラー
var ErrPDFToolNotFound = errors.New("pdftotext command not found in PATH")

// CommandRunner は外部コマンド実行を抽象化する
// テストではモック実装に差し替える
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// Extractor は matching.Extractor の pdftotext 実装
type Extractor struct {
	runner CommandRunner
}

// New は新しい Extractor を作成する
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner はコマンド実行を差し替えて Extractor を作成する
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// CheckAvailable は pdftotext が PATH 上にあるか確認する
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions は pdftotext のインストール手順を返す
func InstallInstructions() string {
	return strings.Join([]string{
		"pdftotext is required for PDF text extraction.",
		"  macOS:  brew install poppler",
		"  Debian: apt install poppler-utils",
	}, "\n")
}

// Extract は文書の全ページのテキストをページ順のまま連結して返す
// ページ境界のマーカーは挿入しない
func (e *Extractor) Extract(ctx context.Context, doc matching.Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: %s", matching.ErrEmptyDocument, doc.Name)
	}

	// pdftotext はシーク可能な入力を要求するため一時ファイル経由で渡す
	tmp, err := os.CreateTemp("", "cv-matcher-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", "-q", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrPDFToolNotFound
		}
		return "", fmt.Errorf("%w: %s: %v", matching.ErrUnreadableDocument, doc.Name, err)
	}

	text := string(out)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", matching.ErrNoTextContent, doc.Name)
	}

	return text, nil
}

// インターフェース実装の確認
var _ matching.Extractor = (*Extractor)(nil)
