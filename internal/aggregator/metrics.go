package aggregator

import (
	"sort"
	"time"

	"txdash/internal/models"
	"txdash/internal/source"
)

const millisPerHour = int64(time.Hour / time.Millisecond)

// bucketKey truncates a millisecond timestamp to the start of its
// containing hour. Integer arithmetic, no timezone conversion.
func bucketKey(timestampMs int64) int64 {
	return timestampMs - timestampMs%millisPerHour
}

// Metrics computes the global counters and the sparse hourly time
// series from one immutable snapshot. A nil snapshot means the source
// never supplied data and fails with ErrDataUnavailable; an empty
// snapshot is a legitimate zero dataset and yields zero-valued stats
// with no hourly rows.
func Metrics(records []models.TransactionRecord) (models.GlobalStats, []models.HourlyStats, error) {
	if records == nil {
		return models.GlobalStats{}, nil, source.ErrDataUnavailable
	}

	global := models.GlobalStats{TotalTransactions: uint64(len(records))}
	if len(records) == 0 {
		return global, nil, nil
	}

	type bucketAgg struct {
		count      uint64
		feeSum     float64
		successful uint64
	}
	buckets := make(map[int64]*bucketAgg)
	slots := make(map[uint64]struct{})

	var feeSum float64
	global.FirstSlot = records[0].Slot
	global.LastSlot = records[0].Slot

	for _, rec := range records {
		feeSum += float64(rec.Fee)
		if rec.Success {
			global.SuccessfulTransactions++
		}
		if rec.Slot < global.FirstSlot {
			global.FirstSlot = rec.Slot
		}
		if rec.Slot > global.LastSlot {
			global.LastSlot = rec.Slot
		}
		slots[rec.Slot] = struct{}{}

		key := bucketKey(rec.Timestamp)
		b, ok := buckets[key]
		if !ok {
			b = &bucketAgg{}
			buckets[key] = b
		}
		b.count++
		b.feeSum += float64(rec.Fee)
		if rec.Success {
			b.successful++
		}
	}

	global.AvgFee = feeSum / float64(len(records))
	global.TotalSlots = uint64(len(slots))

	hourly := make([]models.HourlyStats, 0, len(buckets))
	for key, b := range buckets {
		hourly = append(hourly, models.HourlyStats{
			Hour:             time.UnixMilli(key).UTC(),
			TransactionCount: b.count,
			AvgFee:           b.feeSum / float64(b.count),
			SuccessfulCount:  b.successful,
		})
	}
	sort.Slice(hourly, func(i, j int) bool {
		return hourly[i].Hour.Before(hourly[j].Hour)
	})

	return global, hourly, nil
}
