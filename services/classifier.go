package services

import (
	"time"

	"github.com/angelwang333/IPO-info/models"
)

// Classification holds the three lifecycle buckets of the auction feed. The
// buckets are computed independently and are not forced to be disjoint: the
// upstream feed is the source of truth and may itself be inconsistent, in
// which case a record can legitimately appear in more than one bucket.
type Classification struct {
	Ongoing         []models.AuctionRecord
	AwaitingListing []models.AuctionRecord
	Listed          []models.AuctionRecord
}

// Classify partitions records into lifecycle buckets by comparing their
// derived calendar dates against today, at day granularity:
//
//   - ongoing: the auction period has not ended, or the open date is still in
//     the future
//   - awaiting listing: opened on or before today but listing after today
//   - listed: listing date on or before today
//
// A nil derived date compares false everywhere, so a record with no derivable
// dates lands in no bucket. Returned records carry only the original textual
// fields; the derived date helpers are stripped.
func Classify(records []models.AuctionRecord, today time.Time) Classification {
	today = truncateToDay(today)

	var classification Classification
	for _, record := range records {
		auctionEnd := normalizedDate(record.AuctionEndDate)
		open := normalizedDate(record.OpenDate)
		listing := normalizedDate(record.ListingDate)

		ongoing := (auctionEnd != nil && !auctionEnd.Before(today)) ||
			(open != nil && open.After(today))
		awaiting := open != nil && !open.After(today) &&
			listing != nil && listing.After(today)
		listed := listing != nil && !listing.After(today)

		if ongoing {
			classification.Ongoing = append(classification.Ongoing, record.StripDerivedDates())
		}
		if awaiting {
			classification.AwaitingListing = append(classification.AwaitingListing, record.StripDerivedDates())
		}
		if listed {
			classification.Listed = append(classification.Listed, record.StripDerivedDates())
		}
	}

	return classification
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizedDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := truncateToDay(*t)
	return &day
}
