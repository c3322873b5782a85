package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"txdash/internal/models"
	"txdash/internal/parser"
)

// BucketSource reads transaction exports from a MinIO (or any S3
// compatible) bucket. Objects are decoded by extension, same formats
// as DirectorySource.
type BucketSource struct {
	Client *minio.Client
	Bucket string
	Prefix string
	Logger *zap.Logger

	csv *parser.CSVParser
}

// NewBucketSource initializes the MinIO client and verifies the bucket
// exists before any listing happens.
func NewBucketSource(ctx context.Context, endpoint, accessKey, secretKey, bucket, prefix string, useSSL bool, logger *zap.Logger) (*BucketSource, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &BucketSource{
		Client: client,
		Bucket: bucket,
		Prefix: prefix,
		Logger: logger,
		csv:    parser.NewCSVParser(),
	}, nil
}

func (s *BucketSource) Records(ctx context.Context) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	objects := 0

	opts := minio.ListObjectsOptions{Prefix: s.Prefix, Recursive: true}
	for obj := range s.Client.ListObjects(ctx, s.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects in bucket %q: %w", s.Bucket, obj.Err)
		}

		ext := strings.ToLower(path.Ext(obj.Key))
		if ext != ".parquet" && ext != ".csv" {
			continue
		}

		rows, err := s.readObject(ctx, obj.Key, ext)
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
		objects++
	}

	if objects == 0 {
		return nil, fmt.Errorf("no export objects in bucket %q: %w", s.Bucket, ErrDataUnavailable)
	}

	s.Logger.Info("loaded transaction records",
		zap.String("bucket", s.Bucket),
		zap.Int("objects", objects),
		zap.Int("records", len(records)),
	)
	if records == nil {
		records = []models.TransactionRecord{}
	}
	return records, nil
}

func (s *BucketSource) readObject(ctx context.Context, key, ext string) ([]models.TransactionRecord, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}

	if ext == ".csv" {
		rows, err := s.csv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode csv object %q: %w", key, err)
		}
		return rows, nil
	}

	rows, err := parquet.Read[models.TransactionRecord](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decode parquet object %q: %w", key, err)
	}
	return rows, nil
}
