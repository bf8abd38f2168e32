package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// CategoryAddAction はカテゴリと参照文書パスを登録するアクション
func CategoryAddAction(ctx context.Context, cmd *cli.Command) error {
	category := cmd.String("category")
	path := cmd.String("path")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	// 解決先が読めないパスを登録してもパイプラインで必ず失敗する
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("参照文書が読み込めません: %w", err)
	}

	if err := appCtx.Categories.Upsert(ctx, category, path); err != nil {
		return err
	}

	fmt.Printf("registered: %s -> %s\n", category, path)
	return nil
}

// CategoryListAction は登録済みカテゴリの一覧を表示するアクション
func CategoryListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	refs, err := appCtx.Categories.List(ctx)
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		fmt.Println("no categories registered")
		return nil
	}

	for _, ref := range refs {
		fmt.Printf("%-24s %s (updated %s)\n", ref.Category, ref.Path, ref.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
