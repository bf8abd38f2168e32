package commands

import (
	"context"
	"fmt"

	"github.com/jinford/cv-matcher/internal/interface/httpapi"
	"github.com/urfave/cli/v3"
)

// ServeAction はHTTPサーバを起動するコマンドのアクション
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	matcher, err := appCtx.NewMatcher()
	if err != nil {
		return err
	}

	port := appCtx.Config.Server.Port
	if cmd.IsSet("port") {
		port = cmd.Int("port")
	}

	server := httpapi.NewServer(matcher, appCtx.Files, appCtx.Logger, appCtx.Config.Server.MaxUploadBytes)

	return server.Run(ctx, fmt.Sprintf(":%d", port))
}
