package models

import "time"

// AuctionRecord is one row of the TWSE auction announcement payload after
// normalization. Textual fields are passed through from the source unmodified;
// quantities and prices are kept as text because the feed mixes formats.
type AuctionRecord struct {
	AuctionPeriod     string `json:"auction_period"`
	SecurityCode      string `json:"security_code"`
	SecurityName      string `json:"security_name"`
	Industry          string `json:"industry"`
	Underwriter       string `json:"underwriter"`
	UnderwritingLots  string `json:"underwriting_lots"`
	AuctionLots       string `json:"auction_lots"`
	FloorPrice        string `json:"floor_price"`
	UnderwritingPrice string `json:"underwriting_price"`
	MinWinningPrice   string `json:"min_winning_price"`
	MaxWinningPrice   string `json:"max_winning_price"`
	WeightedAvgPrice  string `json:"weighted_avg_price"`
	ListingDateRaw    string `json:"listing_date"`
	OpenDateRaw       string `json:"open_date"`

	// Derived calendar dates computed from the raw ROC-calendar fields at
	// construction time. Each is a valid date or nil, never a partial parse.
	// They exist only for classification and are stripped before display.
	AuctionEndDate *time.Time `json:"-"`
	OpenDate       *time.Time `json:"-"`
	ListingDate    *time.Time `json:"-"`
}

// AuctionPhase identifies where a record sits in the IPO auction lifecycle.
type AuctionPhase string

const (
	PhaseOngoing         AuctionPhase = "ongoing"
	PhaseAwaitingListing AuctionPhase = "awaiting_listing"
	PhaseListed          AuctionPhase = "listed"
)

// Fixed export sheet names, one per phase.
const (
	SheetOngoing         = "IPO競拍_進行中"
	SheetAwaitingListing = "IPO競拍_開標"
	SheetListed          = "IPO競拍_掛牌"
)

// CanonicalColumns returns the ordered header row used by the dashboard tables
// and the spreadsheet export. The order matches Row.
func CanonicalColumns() []string {
	return []string{
		"競拍期間",
		"證券代號",
		"證券名稱",
		"所屬產業",
		"承銷商",
		"承銷張數",
		"競拍張數",
		"底價",
		"承銷價",
		"最低得標價",
		"最高得標價",
		"得標加權平均價",
		"掛牌日期",
		"開標日期",
	}
}

// Row returns the record's textual values in CanonicalColumns order. Derived
// date fields are deliberately absent.
func (r *AuctionRecord) Row() []string {
	return []string{
		r.AuctionPeriod,
		r.SecurityCode,
		r.SecurityName,
		r.Industry,
		r.Underwriter,
		r.UnderwritingLots,
		r.AuctionLots,
		r.FloorPrice,
		r.UnderwritingPrice,
		r.MinWinningPrice,
		r.MaxWinningPrice,
		r.WeightedAvgPrice,
		r.ListingDateRaw,
		r.OpenDateRaw,
	}
}

// StripDerivedDates returns a copy of the record with the derived date helpers
// cleared, leaving only the original textual fields.
func (r AuctionRecord) StripDerivedDates() AuctionRecord {
	r.AuctionEndDate = nil
	r.OpenDate = nil
	r.ListingDate = nil
	return r
}
