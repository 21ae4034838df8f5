// cmd/submit-samples/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"awards-portal/internal/common/aws"
	"awards-portal/internal/common/config"
	"awards-portal/internal/common/database"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/records"
	"awards-portal/internal/storage"
	"awards-portal/internal/submission"
)

type options struct {
	configPath string
	count      int
	delay      time.Duration
	skipFiles  bool
	strategy   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "submit-samples",
		Short: "Submit generated sample award applications",
		Long: `Submit a batch of generated award applications through the same
create, upload and finalize pipeline the web form uses.

Each profile gets a set of small mock files unless --skip-files is given.
The command exits non-zero when any submission fails.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a config file (default: configs/config.yaml lookup)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of applications to submit (default: submission.batch_size)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "pause between submissions (default: submission.batch_delay)")
	cmd.Flags().BoolVar(&opts.skipFiles, "skip-files", false, "submit forms without any files")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "upload strategy override: s3, fallback, mock or skip")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.strategy != "" {
		cfg.Storage.UploadStrategy = opts.strategy
	}

	batch := submission.BatchOptions{
		Count:     cfg.Submission.BatchSize,
		Delay:     config.GetDuration(cfg.Submission.BatchDelay),
		SkipFiles: opts.skipFiles,
	}
	if cmd.Flags().Changed("count") {
		batch.Count = opts.count
	}
	if cmd.Flags().Changed("delay") {
		batch.Delay = opts.delay
	}
	if batch.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", batch.Count)
	}

	zapLog := logger.FromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unreachable: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		return err
	}

	var s3Client storage.S3API
	if cfg.Storage.UploadStrategy == config.StrategyS3 || cfg.Storage.UploadStrategy == config.StrategyFallback {
		client, err := aws.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		s3Client = client
	}

	uploader, err := storage.New(cfg.Storage.UploadStrategy, s3Client, cfg.Storage, log)
	if err != nil {
		return err
	}

	orchestrator := submission.NewOrchestrator(
		&submission.Config{AnonymousUser: cfg.Submission.AnonymousUser},
		records.NewPostgresStore(pg.DB, log),
		uploader,
		submission.StaticIdentity(cfg.Submission.AnonymousUser),
		log,
	)

	zapLog.Info("Submitting sample applications",
		zap.Int("count", batch.Count),
		zap.Duration("delay", batch.Delay),
		zap.String("uploadStrategy", cfg.Storage.UploadStrategy),
		zap.Bool("skipFiles", batch.SkipFiles),
	)

	out := cmd.OutOrStdout()
	summary, runErr := runBatch(ctx, out, submission.NewBatchRunner(orchestrator, log), batch)
	printSummary(out, summary)

	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", summary.Failed, len(summary.Items))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

type batchRunner interface {
	Run(ctx context.Context, opts submission.BatchOptions) (*submission.BatchSummary, error)
}

func runBatch(ctx context.Context, out io.Writer, runner batchRunner, opts submission.BatchOptions) (*submission.BatchSummary, error) {
	opts.OnItem = func(item submission.BatchItem) {
		printItem(out, item, opts.Count)
	}
	return runner.Run(ctx, opts)
}

func printItem(out io.Writer, item submission.BatchItem, total int) {
	if item.Success {
		fmt.Fprintf(out, "[%d/%d] OK   %s (%s) -> %s\n", item.Index, total, item.Company, item.Category, item.ApplicationID)
		return
	}
	if item.ApplicationID != "" {
		fmt.Fprintf(out, "[%d/%d] FAIL %s (%s): %s [record %s]\n", item.Index, total, item.Company, item.Category, item.Error, item.ApplicationID)
		return
	}
	fmt.Fprintf(out, "[%d/%d] FAIL %s (%s): %s\n", item.Index, total, item.Company, item.Category, item.Error)
}

func printSummary(out io.Writer, summary *submission.BatchSummary) {
	if summary == nil {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Submitted: %d  Successful: %d  Failed: %d\n", len(summary.Items), summary.Successful, summary.Failed)

	if summary.Successful > 0 {
		fmt.Fprintln(out, "Application IDs:")
		for _, item := range summary.Items {
			if item.Success {
				fmt.Fprintf(out, "  %s  %s\n", item.ApplicationID, item.Company)
			}
		}
	}
}
