package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"txdash/internal/models"
	"txdash/internal/parser"
)

// DirectorySource concatenates every parquet and CSV export found in a
// local directory into one snapshot, matching the indexer's export
// layout (one file per flush).
type DirectorySource struct {
	Dir    string
	Logger *zap.Logger

	csv *parser.CSVParser
}

func NewDirectorySource(dir string, logger *zap.Logger) *DirectorySource {
	return &DirectorySource{
		Dir:    dir,
		Logger: logger,
		csv:    parser.NewCSVParser(),
	}
}

func (s *DirectorySource) Records(ctx context.Context) ([]models.TransactionRecord, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read export directory %s: %w", s.Dir, err)
	}

	var records []models.TransactionRecord
	files := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".parquet":
			rows, err := parquet.ReadFile[models.TransactionRecord](path)
			if err != nil {
				return nil, fmt.Errorf("read parquet export %s: %w", path, err)
			}
			records = append(records, rows...)
		case ".csv":
			rows, err := s.csv.ParseFile(path)
			if err != nil {
				return nil, fmt.Errorf("read csv export %s: %w", path, err)
			}
			records = append(records, rows...)
		default:
			continue
		}
		files++
	}

	if files == 0 {
		return nil, fmt.Errorf("no export files in %s: %w", s.Dir, ErrDataUnavailable)
	}

	s.Logger.Info("loaded transaction records",
		zap.String("dir", s.Dir),
		zap.Int("files", files),
		zap.Int("records", len(records)),
	)
	if records == nil {
		records = []models.TransactionRecord{}
	}
	return records, nil
}
