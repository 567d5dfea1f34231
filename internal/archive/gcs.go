// Package archive stores raw fetched pages for later inspection.
package archive

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCS uploads page snapshots to a Google Cloud Storage bucket.
// Authentication goes through Application Default Credentials.
type GCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
	Logger *zap.Logger
}

// NewGCS creates the client and verifies the bucket is reachable so
// misconfiguration fails at startup instead of mid-run.
func NewGCS(ctx context.Context, bucket, prefix string, logger *zap.Logger) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("closing gcs client after attrs failure", zap.Error(cerr))
		}
		return nil, fmt.Errorf("get gcs bucket %q attributes: %w", bucket, err)
	}

	return &GCS{Client: client, Bucket: bucket, Prefix: prefix, Logger: logger}, nil
}

// Archive uploads data under the configured prefix and returns the gs://
// URI of the object.
func (g *GCS) Archive(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	name := objectName
	if g.Prefix != "" {
		name = strings.TrimSuffix(g.Prefix, "/") + "/" + objectName
	}

	wc := g.Client.Bucket(g.Bucket).Object(name).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		if cerr := wc.Close(); cerr != nil {
			g.Logger.Warn("closing gcs writer after write failure", zap.Error(cerr))
		}
		return "", fmt.Errorf("write gcs object %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer for %s: %w", name, err)
	}

	return fmt.Sprintf("gs://%s/%s", g.Bucket, name), nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.Client.Close()
}
