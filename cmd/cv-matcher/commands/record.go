package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// RecordListAction は比較結果レコードの一覧を表示するアクション
func RecordListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	records, err := appCtx.Comparisons.List(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no comparison records")
		return nil
	}

	fmt.Printf("%-6s %-28s %-20s %-8s %s\n", "ID", "SUBJECT", "CATEGORY", "SCORE", "CREATED")
	for _, rec := range records {
		fmt.Printf("%-6d %-28s %-20s %-8.4f %s\n",
			rec.ID, rec.SubjectName, rec.Category, rec.Score, rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// RecordShowAction は比較結果レコードを詳細表示するアクション
func RecordShowAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	rec, err := appCtx.Comparisons.Get(ctx, int64(cmd.Int("id")))
	if err != nil {
		return err
	}

	fmt.Printf("ID:           %d\n", rec.ID)
	fmt.Printf("Subject:      %s\n", rec.SubjectName)
	fmt.Printf("Category:     %s\n", rec.Category)
	fmt.Printf("Score:        %.4f\n", rec.Score)
	fmt.Printf("Created:      %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Subject terms (%d):\n  %s\n", len(rec.SubjectTerms), strings.Join(rec.SubjectTerms, ", "))
	fmt.Printf("Reference terms (%d):\n  %s\n", len(rec.ReferenceTerms), strings.Join(rec.ReferenceTerms, ", "))

	return nil
}
