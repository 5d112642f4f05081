package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

var pullCmd = &cobra.Command{
	Use:   "pull [guid]",
	Short: "Pull documents from the remote API",
	Long: `Pulls documents from the remote content-distribution API and
synchronises them into local records.
With a GUID argument, one document is pulled. Without one, a batch is
pulled using the query flags; documents already synchronised are
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPull,
}

var (
	pullProfile string
	pullTag     string
	pullText    string
	pullLimit   int
	pullContext string
)

func init() {
	pullCmd.Flags().StringVar(&pullProfile, "profile", "", "restrict the batch to one profile")
	pullCmd.Flags().StringVar(&pullTag, "tag", "", "restrict the batch to documents carrying a tag")
	pullCmd.Flags().StringVar(&pullText, "text", "", "free-text search term for the batch")
	pullCmd.Flags().IntVar(&pullLimit, "limit", 0, "maximum number of documents in the batch")
	pullCmd.Flags().StringVar(&pullContext, "context", "", "context value attached to every pulled record")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	p, err := ensurePuller()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if len(args) == 1 {
		guid := args[0]
		rec, err := p.PullOne(ctx, guid)
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		if rec == nil {
			return errors.New("no record was created or updated")
		}
		cmd.Printf("Synchronised %s into %s/%s record %s\n", guid, rec.Category, rec.Bundle, rec.ID)
		return nil
	}

	q := domain.Query{
		Profile: pullProfile,
		Tag:     pullTag,
		Text:    pullText,
		Limit:   pullLimit,
	}
	var pullCtx any
	if pullContext != "" {
		pullCtx = pullContext
	}

	records, err := p.PullMany(ctx, q, pullCtx)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	if len(records) == 0 {
		cmd.Println("No new records were created.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s/%s %s (guid %s)\n", rec.Category, rec.Bundle, rec.ID, rec.GUID)
	}
	cmd.Printf("Pulled %d records.\n", len(records))
	return nil
}
