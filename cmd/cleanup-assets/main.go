// Command cleanup-assets sweeps stale objects from the assets bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	storages3 "jobtrack/infrastructure/storage/s3"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

func main() {
	var (
		bucket    = flag.String("bucket", os.Getenv("ASSETS_BUCKET"), "assets bucket to sweep")
		region    = flag.String("region", os.Getenv("AWS_REGION"), "AWS region")
		olderThan = flag.Duration("older-than", 30*24*time.Hour, "minimum object age before deletion")
		ignore    = flag.String("ignore", "", "comma-separated key prefixes to skip")
		dryRun    = flag.Bool("dry-run", false, "report candidates without deleting")
		verbose   = flag.Bool("verbose", false, "verbose logging")
	)
	flag.Parse()

	if *bucket == "" {
		log.Fatal("bucket is required (-bucket or ASSETS_BUCKET)")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(*region))
	if err != nil {
		logger.Fatal("failed to load AWS config", zap.Error(err))
	}

	cleanup := storages3.NewAssetCleanup(awss3.NewFromConfig(awsCfg), logger)
	result, err := cleanup.Run(ctx, storages3.CleanupOptions{
		Bucket:         *bucket,
		IgnorePrefixes: splitPrefixes(*ignore),
		OlderThan:      *olderThan,
		DryRun:         *dryRun,
	})
	if err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}

	verb := "deleted"
	if *dryRun {
		verb = "would delete"
	}
	fmt.Printf("scanned %d objects, %s %d, %d errors\n", result.Scanned, verb, len(result.Deleted), len(result.Errors))
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func splitPrefixes(s string) []string {
	if s == "" {
		return nil
	}
	var prefixes []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
