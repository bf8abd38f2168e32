package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/cv-matcher/internal/core/matching"
	"github.com/jinford/cv-matcher/internal/infra/filestore"
	"github.com/jinford/cv-matcher/internal/infra/openai"
	"github.com/jinford/cv-matcher/internal/infra/pdftotext"
	"github.com/jinford/cv-matcher/internal/infra/postgres"
	"github.com/jinford/cv-matcher/internal/infra/textrank"
	"github.com/jinford/cv-matcher/internal/platform/config"
	"github.com/jinford/cv-matcher/internal/platform/logger"
	"github.com/jinford/cv-matcher/pkg/db"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config      *config.Config
	Database    *db.DB
	Categories  *postgres.CategoryRepository
	Comparisons *postgres.ComparisonRepository
	Files       *filestore.Store
	Logger      *slog.Logger
}

// NewAppContext は設定ファイルを読み込み、DBに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	database, err := db.New(ctx, db.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベースへの接続に失敗: %w", err)
	}

	return &AppContext{
		Config:      cfg,
		Database:    database,
		Categories:  postgres.NewCategoryRepository(database.Pool),
		Comparisons: postgres.NewComparisonRepository(database.Pool),
		Files:       filestore.New(cfg.UploadDir),
		Logger:      appLogger,
	}, nil
}

// NewMatcher はマッチングパイプラインを組み立てる
// Embeddingクライアントはここで一度だけ作られ、全リクエストで共有される
func (ac *AppContext) NewMatcher() (*matching.Service, error) {
	if err := pdftotext.CheckAvailable(); err != nil {
		return nil, fmt.Errorf("%w\n%s", err, pdftotext.InstallInstructions())
	}

	embedder, err := openai.NewEmbedder(ac.Config.OpenAI.APIKey,
		openai.WithEmbeddingModel(ac.Config.OpenAI.EmbeddingModel),
		openai.WithEmbeddingDimension(ac.Config.OpenAI.EmbeddingDimension),
	)
	if err != nil {
		return nil, err
	}

	return matching.NewService(
		ac.Categories,
		ac.Files,
		pdftotext.New(),
		textrank.New(),
		matching.NewScorer(embedder),
		ac.Comparisons,
		ac.Logger,
	), nil
}

// Close はAppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Database != nil {
		ac.Database.Close()
	}
}
