package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Copy a file into the input directory and index it",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var insertSource string

var insertTextCmd = &cobra.Command{
	Use:   "insert-text [text]",
	Short: "Index a text given as argument or on stdin",
	Long: `Indexes a single text. The text is taken from the argument, or read
from stdin when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInsertText,
}

var insertSources []string

var insertTextsCmd = &cobra.Command{
	Use:   "insert-texts [text]...",
	Short: "Index multiple texts in one batch",
	Long: `Indexes several texts under a single track ID. When --source flags
are given, their count must match the number of texts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsertTexts,
}

func init() {
	insertTextCmd.Flags().StringVarP(&insertSource, "source", "s", "", "Source label recorded as the file path")
	insertTextsCmd.Flags().StringArrayVarP(&insertSources, "source", "s", nil, "Source label per text (repeatable)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(insertTextCmd)
	rootCmd.AddCommand(insertTextsCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.Upload(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	printOperationResult(cmd, result)
	return nil
}

func runInsertText(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return errors.New("no text provided")
	}

	result, err := pipelineService.InsertText(context.Background(), text, insertSource)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	printOperationResult(cmd, result)
	return nil
}

func runInsertTexts(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.InsertTexts(context.Background(), args, insertSources)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	printOperationResult(cmd, result)
	return nil
}

// printOperationResult renders a structured operation outcome.
func printOperationResult(cmd *cobra.Command, result *driving.OperationResult) {
	cmd.Printf("Status:  %s\n", result.Status)
	cmd.Printf("Message: %s\n", result.Message)
	if result.TrackID != "" {
		cmd.Printf("Track:   %s\n", result.TrackID)
	}
}
