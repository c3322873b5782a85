package parser

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"txdash/internal/models"
)

// CSV export columns: slot, timestamp, fee, success, accounts.
// The accounts column is a JSON-encoded string array.
const (
	colSlot = iota
	colTimestamp
	colFee
	colSuccess
	colAccounts
	numColumns
)

// MalformedRecordError reports a row rejected at the decode boundary,
// before any aggregation sees it.
type MalformedRecordError struct {
	Line  int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: missing or invalid %q", e.Line, e.Field)
}

type Parser interface {
	Parse(r io.Reader) ([]models.TransactionRecord, error)
	ParseFile(path string) ([]models.TransactionRecord, error)
}

type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) ParseFile(path string) ([]models.TransactionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return p.Parse(file)
}

func (p *CSVParser) Parse(r io.Reader) ([]models.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []models.TransactionRecord
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := ParseRow(i+1, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseRow decodes one CSV row. Rows missing slot or timestamp are
// rejected with a MalformedRecordError; an empty accounts column is a
// valid record with no participants.
func ParseRow(line int, row []string) (models.TransactionRecord, error) {
	var rec models.TransactionRecord

	if len(row) < numColumns {
		return rec, &MalformedRecordError{Line: line, Field: "record"}
	}

	slot, err := strconv.ParseUint(row[colSlot], 10, 64)
	if err != nil {
		return rec, &MalformedRecordError{Line: line, Field: "slot"}
	}
	rec.Slot = slot

	timestamp, err := strconv.ParseInt(row[colTimestamp], 10, 64)
	if err != nil {
		return rec, &MalformedRecordError{Line: line, Field: "timestamp"}
	}
	rec.Timestamp = timestamp

	fee, err := strconv.ParseUint(row[colFee], 10, 64)
	if err != nil {
		return rec, &MalformedRecordError{Line: line, Field: "fee"}
	}
	rec.Fee = fee

	success, err := strconv.ParseBool(row[colSuccess])
	if err != nil {
		return rec, &MalformedRecordError{Line: line, Field: "success"}
	}
	rec.Success = success

	rec.Accounts = []string{}
	if row[colAccounts] != "" {
		if err := json.Unmarshal([]byte(row[colAccounts]), &rec.Accounts); err != nil {
			return rec, &MalformedRecordError{Line: line, Field: "accounts"}
		}
	}

	return rec, nil
}
