package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List all documents grouped by status",
	Args:  cobra.NoArgs,
	RunE:  runDocuments,
}

var pipelineStatusCmd = &cobra.Command{
	Use:   "pipeline-status",
	Short: "Show the indexing job status and history",
	Args:  cobra.NoArgs,
	RunE:  runPipelineStatus,
}

var trackStatusCmd = &cobra.Command{
	Use:   "track-status [track-id]",
	Short: "Show the documents ingested under a track ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackStatus,
}

// Flags for the paginated listing.
var (
	pageFlag     int
	pageSizeFlag int
	statusFlag   string
	sortFlag     string
	sortDirFlag  string
)

var paginatedCmd = &cobra.Command{
	Use:   "paginated",
	Short: "List documents page by page",
	Args:  cobra.NoArgs,
	RunE:  runPaginated,
}

var statusCountsCmd = &cobra.Command{
	Use:   "status-counts",
	Short: "Count documents per lifecycle status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCounts,
}

func init() {
	paginatedCmd.Flags().IntVar(&pageFlag, "page", 1, "Page number (1-based)")
	paginatedCmd.Flags().IntVar(&pageSizeFlag, "page-size", 10, "Records per page")
	paginatedCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (PENDING, PROCESSING, PROCESSED, FAILED)")
	paginatedCmd.Flags().StringVar(&sortFlag, "sort", "updated_at", "Sort field: created_at, updated_at, id, file_path")
	paginatedCmd.Flags().StringVar(&sortDirFlag, "direction", "desc", "Sort direction: asc or desc")

	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(pipelineStatusCmd)
	rootCmd.AddCommand(trackStatusCmd)
	rootCmd.AddCommand(paginatedCmd)
	rootCmd.AddCommand(statusCountsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.Documents(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	total := 0
	for _, status := range []domain.DocStatus{
		domain.StatusPending, domain.StatusProcessing,
		domain.StatusProcessed, domain.StatusFailed,
	} {
		records := result.Statuses[status]
		if len(records) == 0 {
			continue
		}
		cmd.Printf("%s (%d):\n", status, len(records))
		for _, record := range records {
			printDocumentStatus(cmd, record)
		}
		cmd.Println()
		total += len(records)
	}

	if total == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}
	cmd.Printf("Total: %d documents\n", total)
	return nil
}

func runPipelineStatus(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	status, err := pipelineService.PipelineStatus(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get pipeline status: %w", err)
	}

	cmd.Printf("Busy:         %t\n", status.Busy)
	cmd.Printf("Autoscanned:  %t\n", status.Autoscanned)
	if status.JobName != "" {
		cmd.Printf("Job:          %s\n", status.JobName)
		cmd.Printf("Started:      %s\n", status.JobStart)
		cmd.Printf("Progress:     %d/%d\n", status.CurBatch, status.Batchs)
	}
	if status.LatestMessage != "" {
		cmd.Printf("Latest:       %s\n", status.LatestMessage)
	}

	if len(status.HistoryMessages) > 0 {
		cmd.Println("\nHistory:")
		start := len(status.HistoryMessages) - 10
		if start < 0 {
			start = 0
		}
		for _, message := range status.HistoryMessages[start:] {
			cmd.Printf("  %s\n", message)
		}
	}
	return nil
}

func runTrackStatus(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.TrackStatus(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get track status: %w", err)
	}

	cmd.Printf("Track: %s\n", result.TrackID)
	if result.TotalCount == 0 {
		cmd.Println("No documents found for this track.")
		return nil
	}

	cmd.Println()
	for _, record := range result.Documents {
		printDocumentStatus(cmd, record)
	}

	cmd.Printf("\nTotal: %d documents\n", result.TotalCount)
	keys := make([]string, 0, len(result.StatusSummary))
	for key := range result.StatusSummary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Printf("  %s: %d\n", key, result.StatusSummary[key])
	}
	return nil
}

func runPaginated(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	result, err := pipelineService.Paginated(context.Background(), driving.PaginationRequest{
		Page:          pageFlag,
		PageSize:      pageSizeFlag,
		Status:        statusFlag,
		SortField:     sortFlag,
		SortDirection: sortDirFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, record := range result.Documents {
		printDocumentStatus(cmd, record)
	}

	p := result.Pagination
	cmd.Printf("\nPage %d/%d (%d documents", p.Page, p.TotalPages, p.TotalCount)
	if p.HasNext {
		cmd.Printf(", more available")
	}
	cmd.Println(")")
	return nil
}

func runStatusCounts(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	counts, err := pipelineService.StatusCounts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	total := 0
	for _, status := range []domain.DocStatus{
		domain.StatusPending, domain.StatusProcessing,
		domain.StatusProcessed, domain.StatusFailed,
	} {
		count := counts[string(status)]
		cmd.Printf("%-12s %d\n", status, count)
		total += count
	}
	cmd.Printf("%-12s %d\n", "TOTAL", total)
	return nil
}

// printDocumentStatus renders one doc-status record.
func printDocumentStatus(cmd *cobra.Command, record domain.DocumentStatus) {
	cmd.Printf("  %s\n", record.ID)
	cmd.Printf("    Status:  %s\n", record.Status)
	cmd.Printf("    Summary: %s\n", record.ContentSummary)
	if record.FilePath != "" {
		cmd.Printf("    File:    %s\n", record.FilePath)
	}
	cmd.Printf("    Chunks:  %d\n", record.ChunksCount)
	cmd.Printf("    Updated: %s\n", record.UpdatedAt)
	if record.ErrorMsg != "" {
		cmd.Printf("    Error:   %s\n", record.ErrorMsg)
	}
}
