package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
)

var deleteDocumentCmd = &cobra.Command{
	Use:   "delete-document [doc-id]...",
	Short: "Delete documents and everything derived from them",
	Long: `Removes documents from the store together with their chunks,
vectors and cache entries. Entities and relations shared with other
documents lose the deleted memberships; exclusive ones are removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDeleteDocument,
}

var clearConfirmFlag bool

var clearDocumentsCmd = &cobra.Command{
	Use:   "clear-documents",
	Short: "Delete all documents and input files",
	Args:  cobra.NoArgs,
	RunE:  runClearDocuments,
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Empty the extraction response cache",
	Args:  cobra.NoArgs,
	RunE:  runClearCache,
}

var deleteEntityCmd = &cobra.Command{
	Use:   "delete-entity [name]",
	Short: "Delete an entity and the relations touching it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteEntity,
}

var deleteRelationCmd = &cobra.Command{
	Use:   "delete-relation [source] [target]",
	Short: "Delete the relation between two entities",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeleteRelation,
}

func init() {
	clearDocumentsCmd.Flags().BoolVar(&clearConfirmFlag, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(deleteDocumentCmd)
	rootCmd.AddCommand(clearDocumentsCmd)
	rootCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(deleteEntityCmd)
	rootCmd.AddCommand(deleteRelationCmd)
}

func runDeleteDocument(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.DeleteDocuments(context.Background(), args)
	if err != nil {
		return fmt.Errorf("deletion failed: %w", err)
	}

	cmd.Printf("Status:  %s\n", result.Status)
	cmd.Printf("Message: %s\n", result.Message)
	for _, id := range result.Deleted {
		cmd.Printf("  deleted:   %s\n", id)
	}
	for _, id := range result.NotFound {
		cmd.Printf("  not found: %s\n", id)
	}
	return nil
}

func runClearDocuments(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	if !clearConfirmFlag {
		cmd.Print("This deletes ALL indexed documents and input files. Continue? [y/N] ")
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	result, err := pipelineService.ClearDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	printOperationResult(cmd, result)
	return nil
}

func runClearCache(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.ClearCache(context.Background())
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	printOperationResult(cmd, result)
	return nil
}

func runDeleteEntity(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.DeleteEntity(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("deletion failed: %w", err)
	}

	printGraphDeletionResult(cmd, result)
	return nil
}

func runDeleteRelation(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.DeleteRelation(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("deletion failed: %w", err)
	}

	printGraphDeletionResult(cmd, result)
	return nil
}

// printGraphDeletionResult renders an entity or relation deletion outcome.
func printGraphDeletionResult(cmd *cobra.Command, result *driving.GraphDeletionResult) {
	cmd.Printf("Status:  %s\n", result.Status)
	cmd.Printf("Message: %s\n", result.Message)
}
