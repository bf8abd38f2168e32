package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinford/cv-matcher/internal/core/matching"
	"github.com/urfave/cli/v3"
)

// MatchAction はローカルのPDFをカテゴリの参照文書と比較するアクション
func MatchAction(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")
	category := cmd.String("category")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	matcher, err := appCtx.NewMatcher()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("文書の読み込みに失敗: %w", err)
	}

	doc := matching.Document{
		Name:      filepath.Base(filePath),
		MediaType: "application/pdf",
		Data:      data,
	}

	result, err := matcher.Match(ctx, doc, category)
	if err != nil {
		return err
	}

	fmt.Printf("Similarity score: %.4f\n", result.Score)
	if result.RecordID != nil {
		fmt.Printf("Record ID: %d\n", *result.RecordID)
	} else {
		fmt.Println("Record ID: (not persisted)")
	}

	fmt.Println("\nResume terms:")
	for _, term := range result.SubjectTerms {
		fmt.Printf("  %s\n", term)
	}
	fmt.Println("\nJob description terms:")
	for _, term := range result.ReferenceTerms {
		fmt.Printf("  %s\n", term)
	}

	return nil
}
