// Package s3 holds the asset-bucket maintenance jobs.
package s3

import (
	"context"
	"strings"
	"time"

	apperrors "jobtrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// listPageSize bounds each ListObjectsV2 page.
const listPageSize = 100

// API is the slice of the S3 client the cleanup job uses.
type API interface {
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *awss3.DeleteObjectsInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectsOutput, error)
}

var _ API = (*awss3.Client)(nil)

// CleanupOptions controls which objects the job removes.
type CleanupOptions struct {
	Bucket         string
	IgnorePrefixes []string
	OlderThan      time.Duration
	DryRun         bool
}

// CleanupResult summarizes one cleanup run.
type CleanupResult struct {
	Scanned int
	Deleted []string
	Errors  []string
}

// AssetCleanup removes stale objects from the assets bucket. Uploads are
// orphaned when the application that referenced them is deleted, so the
// bucket is swept periodically instead of tracking references.
type AssetCleanup struct {
	client API
	logger *zap.Logger
	now    func() time.Time
}

// NewAssetCleanup creates a new AssetCleanup
func NewAssetCleanup(client API, logger *zap.Logger) *AssetCleanup {
	return &AssetCleanup{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Run scans the bucket page by page and deletes every object older than the
// cutoff that does not match an ignored prefix. With DryRun set, candidates
// are reported but nothing is deleted.
func (c *AssetCleanup) Run(ctx context.Context, opts CleanupOptions) (CleanupResult, error) {
	if opts.Bucket == "" {
		return CleanupResult{}, apperrors.NewValidationError("bucket is required")
	}

	cutoff := c.now().Add(-opts.OlderThan)
	result := CleanupResult{}

	var continuationToken *string
	for {
		page, err := c.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
			Bucket:            aws.String(opts.Bucket),
			MaxKeys:           aws.Int32(listPageSize),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return result, apperrors.NewDatabaseError("ListObjectsV2", err)
		}

		var candidates []string
		for _, object := range page.Contents {
			result.Scanned++
			key := aws.ToString(object.Key)
			if object.LastModified == nil || object.LastModified.After(cutoff) {
				continue
			}
			if hasIgnoredPrefix(key, opts.IgnorePrefixes) {
				continue
			}
			candidates = append(candidates, key)
		}

		if opts.DryRun {
			result.Deleted = append(result.Deleted, candidates...)
		} else if len(candidates) > 0 {
			deleted, errs := c.deleteBatch(ctx, opts.Bucket, candidates)
			result.Deleted = append(result.Deleted, deleted...)
			result.Errors = append(result.Errors, errs...)
		}

		if page.NextContinuationToken == nil {
			break
		}
		continuationToken = page.NextContinuationToken
	}

	c.logger.Info("asset cleanup finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("errors", len(result.Errors)),
		zap.Bool("dryRun", opts.DryRun),
	)

	return result, nil
}

func (c *AssetCleanup) deleteBatch(ctx context.Context, bucket string, keys []string) (deleted, errs []string) {
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	out, err := c.client.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(false),
		},
	})
	if err != nil {
		c.logger.Error("batch delete failed", zap.Error(err))
		return nil, keys
	}

	for _, obj := range out.Deleted {
		deleted = append(deleted, aws.ToString(obj.Key))
	}
	for _, e := range out.Errors {
		errs = append(errs, aws.ToString(e.Key))
	}
	return deleted, errs
}

func hasIgnoredPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
