package handlers

import (
	"embed"
	"html/template"
	"time"

	"github.com/angelwang333/IPO-info/models"
	"github.com/angelwang333/IPO-info/services"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// DashboardConfig is render-time configuration passed into every dashboard
// render; there is no process-wide page state.
type DashboardConfig struct {
	Title      string
	SourceName string
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Title:      "台灣 IPO 競拍自動追蹤看板",
		SourceName: "台灣證券交易所",
	}
}

// dashboardView is the data handed to the HTML template.
type dashboardView struct {
	Config       DashboardConfig
	Today        string
	Columns      []string
	ErrorMessage string
	NoData       bool
	RowsSkipped  int
	Tabs         []dashboardTab
}

type dashboardTab struct {
	ID      string
	Label   string
	Empty   string
	Records []models.AuctionRecord
}

type DashboardHandler struct {
	Fetcher AuctionFetcher
	Config  DashboardConfig

	Now func() time.Time
}

func NewDashboardHandler(fetcher AuctionFetcher, config DashboardConfig) *DashboardHandler {
	return &DashboardHandler{
		Fetcher: fetcher,
		Config:  config,
		Now:     time.Now,
	}
}

// Render serves the three-tab dashboard. A fetch failure degrades to an error
// banner with no tables; an empty feed renders an informational notice.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	now := h.Now()
	view := dashboardView{
		Config:  h.Config,
		Today:   now.Format("2006-01-02"),
		Columns: models.CanonicalColumns(),
	}

	result, err := h.Fetcher.Fetch(c.Context())
	if err != nil {
		view.ErrorMessage = err.Error()
	} else {
		view.NoData = result.NoData
		view.RowsSkipped = result.RowsSkipped
		classification := services.Classify(result.Records, now)
		view.Tabs = []dashboardTab{
			{ID: "ongoing", Label: "🚀 進行中", Empty: "目前沒有進行中的競拍案件。", Records: classification.Ongoing},
			{ID: "awaiting", Label: "⚖️ 已開標 (待掛牌)", Empty: "目前沒有等待掛牌的案件。", Records: classification.AwaitingListing},
			{ID: "listed", Label: "🏁 已掛牌", Empty: "尚無歷史資料。", Records: classification.Listed},
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return dashboardTemplate.Execute(c.Response().BodyWriter(), view)
}
