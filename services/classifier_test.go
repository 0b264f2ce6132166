package services

import (
	"testing"
	"time"

	"github.com/angelwang333/IPO-info/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierToday() time.Time {
	return time.Date(2024, time.November, 10, 0, 0, 0, 0, time.UTC)
}

func dateRef(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestClassifyOngoingByAuctionEnd(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode:   "7001",
		AuctionEndDate: dateRef(2024, time.November, 14),
	}}

	classification := Classify(records, classifierToday())

	require.Len(t, classification.Ongoing, 1)
	assert.Empty(t, classification.AwaitingListing)
	assert.Empty(t, classification.Listed)
}

func TestClassifyOngoingByFutureOpenDate(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7002",
		OpenDate:     dateRef(2024, time.November, 15),
	}}

	classification := Classify(records, classifierToday())

	require.Len(t, classification.Ongoing, 1)
}

func TestClassifyAuctionEndingTodayIsStillOngoing(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode:   "7003",
		AuctionEndDate: dateRef(2024, time.November, 10),
	}}

	classification := Classify(records, classifierToday())

	require.Len(t, classification.Ongoing, 1)
}

func TestClassifyAwaitingListing(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7004",
		OpenDate:     dateRef(2024, time.November, 9),
		ListingDate:  dateRef(2024, time.November, 20),
	}}

	classification := Classify(records, classifierToday())

	assert.Empty(t, classification.Ongoing)
	require.Len(t, classification.AwaitingListing, 1)
	assert.Empty(t, classification.Listed)
}

func TestClassifyListed(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7005",
		ListingDate:  dateRef(2024, time.November, 1),
	}}

	classification := Classify(records, classifierToday())

	assert.Empty(t, classification.Ongoing)
	assert.Empty(t, classification.AwaitingListing)
	require.Len(t, classification.Listed, 1)
}

func TestClassifyListingTodayCountsAsListed(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7006",
		ListingDate:  dateRef(2024, time.November, 10),
	}}

	classification := Classify(records, classifierToday())

	require.Len(t, classification.Listed, 1)
	assert.Empty(t, classification.AwaitingListing)
}

func TestClassifyAllDatesAbsentLandsNowhere(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7007",
	}}

	classification := Classify(records, classifierToday())

	assert.Empty(t, classification.Ongoing)
	assert.Empty(t, classification.AwaitingListing)
	assert.Empty(t, classification.Listed)
}

func TestClassifyUnknownOpenOrListingExcludesAwaiting(t *testing.T) {
	records := []models.AuctionRecord{
		{SecurityCode: "7008", OpenDate: dateRef(2024, time.November, 9)},
		{SecurityCode: "7009", ListingDate: dateRef(2024, time.November, 20)},
	}

	classification := Classify(records, classifierToday())

	assert.Empty(t, classification.AwaitingListing)
}

// Inconsistent upstream data may satisfy more than one predicate; the buckets
// are deliberately not forced to be disjoint.
func TestClassifyInconsistentDataMayOverlap(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode: "7010",
		OpenDate:     dateRef(2024, time.November, 15), // stale: still in the future
		ListingDate:  dateRef(2024, time.November, 1),  // already listed
	}}

	classification := Classify(records, classifierToday())

	assert.Len(t, classification.Ongoing, 1)
	assert.Len(t, classification.Listed, 1)
}

func TestClassifyStripsDerivedDates(t *testing.T) {
	records := []models.AuctionRecord{{
		SecurityCode:   "7011",
		AuctionPeriod:  "113/11/12~113/11/14",
		AuctionEndDate: dateRef(2024, time.November, 14),
		OpenDate:       dateRef(2024, time.November, 15),
		ListingDate:    dateRef(2024, time.November, 20),
	}}

	classification := Classify(records, classifierToday())

	require.Len(t, classification.Ongoing, 1)
	got := classification.Ongoing[0]
	assert.Nil(t, got.AuctionEndDate)
	assert.Nil(t, got.OpenDate)
	assert.Nil(t, got.ListingDate)
	assert.Equal(t, "113/11/12~113/11/14", got.AuctionPeriod, "textual fields survive stripping")
}

func TestClassifyComparesAtDayGranularity(t *testing.T) {
	// A listing timestamp later the same day still counts as listed today.
	listing := time.Date(2024, time.November, 10, 23, 59, 0, 0, time.UTC)
	records := []models.AuctionRecord{{
		SecurityCode: "7012",
		ListingDate:  &listing,
	}}

	classification := Classify(records, time.Date(2024, time.November, 10, 8, 0, 0, 0, time.UTC))

	require.Len(t, classification.Listed, 1)
}
