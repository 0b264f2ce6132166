package main

import (
	"time"

	"github.com/angelwang333/IPO-info/config"
	"github.com/angelwang333/IPO-info/handlers"
	"github.com/angelwang333/IPO-info/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", cfg.LogLevel)
	} else {
		logrus.SetLevel(level)
	}

	// Initialize services
	auctionService := services.NewTWSEAuctionService(&services.TWSEAuctionServiceConfiguration{
		AuctionURL:         cfg.AuctionURL,
		HTTPRequestTimeout: cfg.FetchTimeout(),
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	exportService := services.NewExcelExportService()

	logrus.WithFields(logrus.Fields{
		"auction_url":          cfg.AuctionURL,
		"fetch_timeout":        cfg.FetchTimeout(),
		"insecure_skip_verify": cfg.InsecureSkipVerify,
	}).Info("IPO auction tracker services initialized")

	// Initialize handlers
	auctionHandler := handlers.NewAuctionHandler(auctionService, exportService)
	dashboardHandler := handlers.NewDashboardHandler(auctionService, handlers.DefaultDashboardConfig())

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Dashboard
	app.Get("/", dashboardHandler.Render)

	// Health check endpoint with fetch metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"fetch":     auctionService.Metrics().Snapshot(),
		})
	})

	// Routes
	api := app.Group("/api/v1")

	api.Get("/auctions", auctionHandler.GetAuctions)
	api.Get("/auctions/ongoing", auctionHandler.GetOngoing)
	api.Get("/auctions/awaiting-listing", auctionHandler.GetAwaitingListing)
	api.Get("/auctions/listed", auctionHandler.GetListed)
	api.Get("/auctions/export", auctionHandler.ExportExcel)

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
