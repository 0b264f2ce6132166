package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMatchesCanonicalColumns(t *testing.T) {
	record := AuctionRecord{
		AuctionPeriod: "113/11/12~113/11/14",
		SecurityCode:  "7001",
		OpenDateRaw:   "113/11/18",
	}

	row := record.Row()
	require.Len(t, row, len(CanonicalColumns()))
	assert.Equal(t, "113/11/12~113/11/14", row[0])
	assert.Equal(t, "7001", row[1])
	assert.Equal(t, "113/11/18", row[len(row)-1])
}

func TestStripDerivedDates(t *testing.T) {
	end := time.Date(2024, time.November, 14, 0, 0, 0, 0, time.UTC)
	record := AuctionRecord{SecurityCode: "7001", AuctionEndDate: &end}

	stripped := record.StripDerivedDates()
	assert.Nil(t, stripped.AuctionEndDate)
	assert.Equal(t, "7001", stripped.SecurityCode)
	assert.NotNil(t, record.AuctionEndDate, "original record is not mutated")
}

func TestDerivedDatesExcludedFromJSON(t *testing.T) {
	end := time.Date(2024, time.November, 14, 0, 0, 0, 0, time.UTC)
	record := AuctionRecord{SecurityCode: "7001", AuctionEndDate: &end, OpenDate: &end, ListingDate: &end}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "2024-11-14")
	assert.Contains(t, string(data), `"security_code":"7001"`)
}
