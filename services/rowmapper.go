package services

import (
	"strings"

	"github.com/angelwang333/IPO-info/models"
)

// RowMapper converts one raw payload row into a normalized AuctionRecord.
// MapRow returns ok=false when the row cannot yield a record at all (too few
// values); such rows are skipped silently by the caller.
type RowMapper interface {
	MapRow(row []string) (*models.AuctionRecord, bool)
}

// NewRowMapper selects the mapping strategy for a payload: named resolution
// when the response carried a fields array, positional offsets otherwise.
func NewRowMapper(fields []string) RowMapper {
	if len(fields) > 0 {
		return newNamedRowMapper(fields)
	}
	return positionalRowMapper{}
}

// Fixed field offsets observed in the TWSE auction announcement payload.
const (
	offsetAuctionPeriod     = 0
	offsetSecurityCode      = 1
	offsetSecurityName      = 2
	offsetIndustry          = 3
	offsetUnderwriter       = 4
	offsetUnderwritingLots  = 5
	offsetAuctionLots       = 6
	offsetFloorPrice        = 9
	offsetUnderwritingPrice = 10
	offsetMinWinningPrice   = 12
	offsetMaxWinningPrice   = 13
	offsetWeightedAvgPrice  = 14
	offsetListingDate       = 17
	offsetOpenDate          = 18

	// Rows shorter than this cannot carry the required fields.
	minimumPositionalRowLength = 18
)

// positionalRowMapper maps rows by fixed field offsets.
type positionalRowMapper struct{}

func (positionalRowMapper) MapRow(row []string) (*models.AuctionRecord, bool) {
	if len(row) < minimumPositionalRowLength {
		return nil, false
	}

	record := &models.AuctionRecord{
		AuctionPeriod:     row[offsetAuctionPeriod],
		SecurityCode:      row[offsetSecurityCode],
		SecurityName:      row[offsetSecurityName],
		Industry:          row[offsetIndustry],
		Underwriter:       row[offsetUnderwriter],
		UnderwritingLots:  row[offsetUnderwritingLots],
		AuctionLots:       row[offsetAuctionLots],
		FloorPrice:        row[offsetFloorPrice],
		UnderwritingPrice: row[offsetUnderwritingPrice],
		MinWinningPrice:   row[offsetMinWinningPrice],
		MaxWinningPrice:   row[offsetMaxWinningPrice],
		WeightedAvgPrice:  row[offsetWeightedAvgPrice],
		ListingDateRaw:    row[offsetListingDate],
	}

	// The open date column trails the payload and is not always present.
	if len(row) > offsetOpenDate {
		record.OpenDateRaw = row[offsetOpenDate]
	}

	deriveDates(record)
	return record, true
}

// canonicalField identifies one semantic column of the auction payload.
type canonicalField int

const (
	fieldAuctionPeriod canonicalField = iota
	fieldSecurityCode
	fieldSecurityName
	fieldIndustry
	fieldUnderwriter
	fieldUnderwritingLots
	fieldAuctionLots
	fieldFloorPrice
	fieldUnderwritingPrice
	fieldMinWinningPrice
	fieldMaxWinningPrice
	fieldWeightedAvgPrice
	fieldListingDate
	fieldOpenDate
)

// fieldSynonyms maps the column names the TWSE feed has been observed to use
// onto canonical fields. Multiple known aliases exist per field.
var fieldSynonyms = map[string]canonicalField{
	"競拍期間":    fieldAuctionPeriod,
	"投標期間":    fieldAuctionPeriod,
	"auction period": fieldAuctionPeriod,

	"股票代號": fieldSecurityCode,
	"證券代號": fieldSecurityCode,
	"code": fieldSecurityCode,

	"股票名稱": fieldSecurityName,
	"證券名稱": fieldSecurityName,
	"name": fieldSecurityName,

	"所屬產業": fieldIndustry,
	"產業別":  fieldIndustry,
	"industry": fieldIndustry,

	"承銷商":  fieldUnderwriter,
	"主辦承銷商": fieldUnderwriter,
	"underwriter": fieldUnderwriter,

	"承銷張數": fieldUnderwritingLots,
	"競拍張數": fieldAuctionLots,
	"投標張數": fieldAuctionLots,

	"底價":   fieldFloorPrice,
	"最低承銷價格": fieldFloorPrice,

	"承銷價":  fieldUnderwritingPrice,
	"承銷價格": fieldUnderwritingPrice,

	"最低得標價": fieldMinWinningPrice,
	"最高得標價": fieldMaxWinningPrice,

	"得標加權平均價": fieldWeightedAvgPrice,
	"加權平均得標價": fieldWeightedAvgPrice,

	"掛牌日期": fieldListingDate,
	"上市日期": fieldListingDate,
	"listing date": fieldListingDate,

	"開標日期": fieldOpenDate,
	"開標日":  fieldOpenDate,
	"open date": fieldOpenDate,
}

// namedRowMapper maps rows through the column positions named by the payload's
// fields array, resolved against the synonym table.
type namedRowMapper struct {
	indexByField map[canonicalField]int
}

func newNamedRowMapper(fields []string) namedRowMapper {
	indexByField := make(map[canonicalField]int)
	for position, name := range fields {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, known := fieldSynonyms[key]; known {
			// First occurrence wins when a feed repeats an alias.
			if _, seen := indexByField[field]; !seen {
				indexByField[field] = position
			}
		}
	}
	return namedRowMapper{indexByField: indexByField}
}

func (m namedRowMapper) MapRow(row []string) (*models.AuctionRecord, bool) {
	// Without an auction period column the record cannot be classified and the
	// row carries nothing this payload shape promises.
	periodIndex, hasPeriod := m.indexByField[fieldAuctionPeriod]
	if !hasPeriod || periodIndex >= len(row) {
		return nil, false
	}

	record := &models.AuctionRecord{
		AuctionPeriod:     m.value(row, fieldAuctionPeriod),
		SecurityCode:      m.value(row, fieldSecurityCode),
		SecurityName:      m.value(row, fieldSecurityName),
		Industry:          m.value(row, fieldIndustry),
		Underwriter:       m.value(row, fieldUnderwriter),
		UnderwritingLots:  m.value(row, fieldUnderwritingLots),
		AuctionLots:       m.value(row, fieldAuctionLots),
		FloorPrice:        m.value(row, fieldFloorPrice),
		UnderwritingPrice: m.value(row, fieldUnderwritingPrice),
		MinWinningPrice:   m.value(row, fieldMinWinningPrice),
		MaxWinningPrice:   m.value(row, fieldMaxWinningPrice),
		WeightedAvgPrice:  m.value(row, fieldWeightedAvgPrice),
		ListingDateRaw:    m.value(row, fieldListingDate),
		OpenDateRaw:       m.value(row, fieldOpenDate),
	}

	deriveDates(record)
	return record, true
}

func (m namedRowMapper) value(row []string, field canonicalField) string {
	index, known := m.indexByField[field]
	if !known || index >= len(row) {
		return ""
	}
	return row[index]
}

// deriveDates computes the classification helper dates from the raw ROC-calendar
// text fields. Records are never mutated after this point.
func deriveDates(record *models.AuctionRecord) {
	record.AuctionEndDate = ParseROCRangeEnd(record.AuctionPeriod)
	record.OpenDate = ParseROCDate(record.OpenDateRaw)
	record.ListingDate = ParseROCDate(record.ListingDateRaw)
}
