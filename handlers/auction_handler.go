package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/angelwang333/IPO-info/services"
	"github.com/gofiber/fiber/v2"
)

// AuctionFetcher is the slice of TWSEAuctionService the handlers depend on.
type AuctionFetcher interface {
	Fetch(ctx context.Context) (*services.FetchResult, error)
}

type AuctionHandler struct {
	Fetcher  AuctionFetcher
	Exporter *services.ExcelExportService

	// Now supplies the classification reference date; overridable in tests.
	Now func() time.Time
}

func NewAuctionHandler(fetcher AuctionFetcher, exporter *services.ExcelExportService) *AuctionHandler {
	return &AuctionHandler{
		Fetcher:  fetcher,
		Exporter: exporter,
		Now:      time.Now,
	}
}

// GetAuctions returns every normalized record of the current feed together
// with the skipped-row diagnostic count.
func (h *AuctionHandler) GetAuctions(c *fiber.Ctx) error {
	result, err := h.Fetcher.Fetch(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"data":         result.Records,
		"no_data":      result.NoData,
		"rows_skipped": result.RowsSkipped,
	})
}

// GetOngoing returns auctions whose bidding window is still open or whose
// open date lies in the future.
func (h *AuctionHandler) GetOngoing(c *fiber.Ctx) error {
	return h.respondWithBucket(c, func(classification services.Classification) interface{} {
		return classification.Ongoing
	})
}

// GetAwaitingListing returns auctions already opened but not yet listed.
func (h *AuctionHandler) GetAwaitingListing(c *fiber.Ctx) error {
	return h.respondWithBucket(c, func(classification services.Classification) interface{} {
		return classification.AwaitingListing
	})
}

// GetListed returns auctions whose securities have reached their listing date.
func (h *AuctionHandler) GetListed(c *fiber.Ctx) error {
	return h.respondWithBucket(c, func(classification services.Classification) interface{} {
		return classification.Listed
	})
}

func (h *AuctionHandler) respondWithBucket(c *fiber.Ctx, pick func(services.Classification) interface{}) error {
	result, err := h.Fetcher.Fetch(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	classification := services.Classify(result.Records, h.Now())
	return c.JSON(fiber.Map{
		"success": true,
		"data":    pick(classification),
		"no_data": result.NoData,
	})
}

// ExportExcel streams the three classified buckets as a single xlsx workbook.
func (h *AuctionHandler) ExportExcel(c *fiber.Ctx) error {
	result, err := h.Fetcher.Fetch(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	now := h.Now()
	classification := services.Classify(result.Records, now)

	workbook, err := h.Exporter.BuildWorkbook(classification)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	filename := fmt.Sprintf("IPO_Auction_Data_%s.xlsx", now.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(workbook)
}
