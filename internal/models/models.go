package models

import "time"

// TransactionRecord is one on-chain transaction as exported by the
// indexer. Accounts keeps its original order and duplicates; each
// occurrence counts toward that account's activity.
type TransactionRecord struct {
	Slot      uint64   `json:"slot" ch:"slot" parquet:"slot"`
	Timestamp int64    `json:"timestamp" ch:"timestamp" parquet:"timestamp"` // milliseconds since epoch
	Fee       uint64   `json:"fee" ch:"fee" parquet:"fee"`
	Success   bool     `json:"success" ch:"success" parquet:"success"`
	Accounts  []string `json:"accounts" ch:"accounts" parquet:"accounts,list"`
}

// GlobalStats summarizes the whole record set.
type GlobalStats struct {
	TotalTransactions      uint64  `json:"total_transactions"`
	AvgFee                 float64 `json:"avg_fee"`
	SuccessfulTransactions uint64  `json:"successful_transactions"`
	FirstSlot              uint64  `json:"first_slot"`
	LastSlot               uint64  `json:"last_slot"`
	TotalSlots             uint64  `json:"total_slots"`
}

// SuccessRate returns the successful share as a percentage. An empty
// record set yields 0 rather than a division fault.
func (g GlobalStats) SuccessRate() float64 {
	if g.TotalTransactions == 0 {
		return 0
	}
	return float64(g.SuccessfulTransactions) / float64(g.TotalTransactions) * 100
}

// HourlyStats is one hour-aligned bucket of the sparse time series.
type HourlyStats struct {
	Hour             time.Time `json:"hour"`
	TransactionCount uint64    `json:"transaction_count"`
	AvgFee           float64   `json:"avg_fee"`
	SuccessfulCount  uint64    `json:"successful_count"`
}

// AccountStats is one row of the account activity ranking.
// TransactionCount counts (account, record) associations, so an
// account listed twice in one record counts twice; SlotsParticipated
// is deduplicated per account.
type AccountStats struct {
	Account                string `json:"account"`
	TransactionCount       uint64 `json:"transaction_count"`
	SuccessfulTransactions uint64 `json:"successful_transactions"`
	SlotsParticipated      uint64 `json:"slots_participated"`
}

// Report bundles the three summary tables handed to the presentation
// layer. It is immutable once the pipeline returns it.
type Report struct {
	Global   GlobalStats
	Hourly   []HourlyStats
	Accounts []AccountStats
}
