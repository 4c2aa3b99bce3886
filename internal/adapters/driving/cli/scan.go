package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgraph-cli/internal/logger"
)

var watchFlag bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Index new files from the input directory",
	Long: `Scans the input directory for supported files that have not been
indexed yet and processes them. With --watch, keeps running and indexes
files as they appear until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep watching the input directory")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	ctx := context.Background()

	result, err := pipelineService.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	printOperationResult(cmd, result)

	if !watchFlag {
		return nil
	}
	if inputScanner == nil {
		return errors.New("input scanner not configured")
	}

	watchCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, watchErrs, err := inputScanner.Watch(watchCtx)
	if err != nil {
		return fmt.Errorf("watching input directory: %w", err)
	}

	cmd.Printf("Watching %s for new files. Press Ctrl+C to stop.\n", inputScanner.Dir())
	for {
		select {
		case <-watchCtx.Done():
			cmd.Println("Watch stopped.")
			return nil
		case path, ok := <-files:
			if !ok {
				return nil
			}
			logger.Debug("file event: %s", path)
			result, err := pipelineService.Scan(watchCtx)
			if err != nil {
				cmd.PrintErrf("scan failed: %v\n", err)
				continue
			}
			printOperationResult(cmd, result)
		case err, ok := <-watchErrs:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", err)
		}
	}
}
