package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinford/cv-matcher/cmd/cv-matcher/commands"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "cv-matcher",
		Usage: "履歴書と求人票カテゴリの類似度マッチングサービス",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "HTTPサーバを起動",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "HTTPポート（省略時は環境変数の値を使用）",
					},
				},
				Action: commands.ServeAction,
			},
			{
				Name:  "match",
				Usage: "ローカルのPDFをカテゴリの参照文書と比較",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "file",
						Usage:    "履歴書PDFのパス",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "category",
						Usage:    "求人票カテゴリ（例: data_scientist）",
						Required: true,
					},
				},
				Action: commands.MatchAction,
			},
			{
				Name:  "category",
				Usage: "カテゴリ管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "add",
						Usage: "カテゴリと参照文書パスを登録",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "category",
								Usage:    "カテゴリラベル",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "path",
								Usage:    "参照文書（求人票PDF）のパス",
								Required: true,
							},
						},
						Action: commands.CategoryAddAction,
					},
					{
						Name:  "list",
						Usage: "登録済みカテゴリの一覧を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
						},
						Action: commands.CategoryListAction,
					},
				},
			},
			{
				Name:  "record",
				Usage: "比較結果レコード管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "比較結果の一覧を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "表示件数",
								Value: 50,
							},
						},
						Action: commands.RecordListAction,
					},
					{
						Name:  "show",
						Usage: "比較結果を詳細表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.IntFlag{
								Name:     "id",
								Usage:    "レコードID",
								Required: true,
							},
						},
						Action: commands.RecordShowAction,
					},
				},
			},
			{
				Name:  "migrate",
				Usage: "データベーススキーマを適用",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
				},
				Action: commands.MigrateAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
