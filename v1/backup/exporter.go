package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/schema-registry/v1/storage"
)

// Manifest describes one completed lineage export.
type Manifest struct {
	SchemaID   string    `json:"schema_id"`
	Revisions  []int64   `json:"revisions"`
	ExportedAt time.Time `json:"exported_at"`
}

// Exporter copies schema lineages from the registry's storage into
// S3-compatible object storage.
type Exporter struct {
	cfg    Config
	client *minio.Client
	store  storage.Storage
}

// NewExporter creates a lineage exporter over the given storage.
// Returns the concrete *Exporter type.
func NewExporter(cfg Config, store storage.Storage) (*Exporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("backup: object storage endpoint is required")
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("backup: failed to create object storage client: %w", err)
	}

	return &Exporter{cfg: cfg, client: client, store: store}, nil
}

// ExportLineage uploads every revision of the lineage plus a manifest and
// returns the manifest. Revisions upload concurrently; the manifest is
// written only after all of them succeeded, so a present manifest marks a
// complete export.
func (e *Exporter) ExportLineage(ctx context.Context, schemaID string) (*Manifest, error) {
	if err := e.ensureBucket(ctx); err != nil {
		return nil, err
	}

	records, err := e.store.GetAll(ctx, schemaID)
	if err != nil {
		return nil, fmt.Errorf("backup: failed to read lineage of %q: %w", schemaID, err)
	}

	revisions := make([]int64, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, record := range records {
		revision, err := e.store.VersionFromBytes(record.Version.Bytes())
		if err != nil {
			return nil, err
		}
		revisions[i] = revision

		data := record.Data
		g.Go(func() error {
			return e.upload(ctx, objectName(schemaID, revision), data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		SchemaID:   schemaID,
		Revisions:  revisions,
		ExportedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("backup: failed to marshal manifest for %q: %w", schemaID, err)
	}
	if err := e.upload(ctx, manifestName(schemaID), raw); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (e *Exporter) ensureBucket(ctx context.Context) error {
	exists, err := e.client.BucketExists(ctx, e.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("backup: failed to check bucket %q: %w", e.cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := e.client.MakeBucket(ctx, e.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("backup: failed to create bucket %q: %w", e.cfg.Bucket, err)
	}
	return nil
}

func (e *Exporter) upload(ctx context.Context, name string, data []byte) error {
	_, err := e.client.PutObject(ctx, e.cfg.Bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("backup: failed to upload %q: %w", name, err)
	}
	return nil
}

func objectName(schemaID string, revision int64) string {
	return fmt.Sprintf("%s/revision-%d.json", schemaID, revision)
}

func manifestName(schemaID string) string {
	return schemaID + "/manifest.json"
}
