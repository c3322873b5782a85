package source

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"txdash/internal/models"
)

// TableSource reads the full transactions table from ClickHouse when
// the exports have been loaded into a warehouse instead of files.
// Ingestion only; computed aggregates are never written back.
type TableSource struct {
	Conn   clickhouse.Conn
	Table  string
	Logger *zap.Logger
}

func NewTableSource(ctx context.Context, addr, database, table string, logger *zap.Logger) (*TableSource, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}

	return &TableSource{Conn: conn, Table: table, Logger: logger}, nil
}

func (s *TableSource) Records(ctx context.Context) ([]models.TransactionRecord, error) {
	query := fmt.Sprintf(`
    SELECT
        slot,
        timestamp,
        fee,
        success,
        accounts
    FROM %s
    `, s.Table)

	var records []models.TransactionRecord
	if err := s.Conn.Select(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("query transactions from %s: %w", s.Table, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s is empty: %w", s.Table, ErrDataUnavailable)
	}

	s.Logger.Info("loaded transaction records",
		zap.String("table", s.Table),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func (s *TableSource) Close() error {
	return s.Conn.Close()
}
