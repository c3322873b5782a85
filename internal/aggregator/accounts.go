package aggregator

import (
	"sort"

	"txdash/internal/models"
	"txdash/internal/source"
)

// DefaultTopAccounts caps the activity ranking. The dashboard shows a
// smaller window of it; that truncation is a presentation concern.
const DefaultTopAccounts = 100

// TopAccounts fans each record out into one (account, record)
// association per accounts entry, groups the associations by account,
// and ranks accounts by occurrence count descending. Ties keep
// first-seen order. A limit <= 0 falls back to DefaultTopAccounts.
func TopAccounts(records []models.TransactionRecord, limit int) ([]models.AccountStats, error) {
	if records == nil {
		return nil, source.ErrDataUnavailable
	}
	if limit <= 0 {
		limit = DefaultTopAccounts
	}

	type association struct {
		account string
		slot    uint64
		success bool
	}

	// Explicit fan-out: duplicate appearances within a single record
	// stay distinct associations.
	associations := make([]association, 0, len(records))
	for i := range records {
		for _, account := range records[i].Accounts {
			associations = append(associations, association{
				account: account,
				slot:    records[i].Slot,
				success: records[i].Success,
			})
		}
	}

	type accountAgg struct {
		stats models.AccountStats
		slots map[uint64]struct{}
	}
	byAccount := make(map[string]*accountAgg, len(associations))
	order := make([]string, 0, len(associations))

	for _, a := range associations {
		agg, ok := byAccount[a.account]
		if !ok {
			agg = &accountAgg{
				stats: models.AccountStats{Account: a.account},
				slots: make(map[uint64]struct{}),
			}
			byAccount[a.account] = agg
			order = append(order, a.account)
		}
		agg.stats.TransactionCount++
		if a.success {
			agg.stats.SuccessfulTransactions++
		}
		agg.slots[a.slot] = struct{}{}
	}

	ranked := make([]models.AccountStats, 0, len(order))
	for _, account := range order {
		agg := byAccount[account]
		agg.stats.SlotsParticipated = uint64(len(agg.slots))
		ranked = append(ranked, agg.stats)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TransactionCount > ranked[j].TransactionCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
