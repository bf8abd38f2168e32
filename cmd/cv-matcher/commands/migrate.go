package commands

import (
	"context"
	"fmt"

	"github.com/jinford/cv-matcher/internal/infra/postgres"
	"github.com/urfave/cli/v3"
)

// MigrateAction はデータベーススキーマを適用するアクション
func MigrateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := postgres.Migrate(ctx, appCtx.Database.Pool); err != nil {
		return err
	}

	fmt.Println("schema applied")
	return nil
}
