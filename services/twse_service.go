package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/angelwang333/IPO-info/models"
	"github.com/angelwang333/IPO-info/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TWSEAuctionServiceConfiguration holds configuration parameters for the
// auction announcement fetcher.
type TWSEAuctionServiceConfiguration struct {
	AuctionURL         string        // TWSE auction announcement endpoint
	HTTPRequestTimeout time.Duration // Maximum time to wait for the response
	InsecureSkipVerify bool          // Tolerate the endpoint's certificate chain
}

// NewDefaultTWSEAuctionServiceConfiguration returns production-ready defaults
func NewDefaultTWSEAuctionServiceConfiguration() *TWSEAuctionServiceConfiguration {
	return &TWSEAuctionServiceConfiguration{
		AuctionURL:         "https://www.twse.com.tw/rwd/zh/announcement/auction",
		HTTPRequestTimeout: 10 * time.Second,
		InsecureSkipVerify: true,
	}
}

// FetchResult is the outcome of one successful fetch. NoData distinguishes an
// empty-but-valid feed from transport or payload failures, which surface as
// errors instead.
type FetchResult struct {
	Records     []models.AuctionRecord
	RowsSkipped int
	NoData      bool
}

// TWSEAuctionService fetches and normalizes the TWSE IPO auction announcement
// feed. One GET per call, no retry: the caller re-fetches on the next render.
type TWSEAuctionService struct {
	configuration *TWSEAuctionServiceConfiguration
	httpClient    *http.Client
	metrics       *shared.ServiceMetrics
}

// NewTWSEAuctionService creates a new auction fetch service with the specified
// configuration.
func NewTWSEAuctionService(config *TWSEAuctionServiceConfiguration) *TWSEAuctionService {
	if config == nil {
		config = NewDefaultTWSEAuctionServiceConfiguration()
	} else {
		if config.AuctionURL == "" {
			config.AuctionURL = "https://www.twse.com.tw/rwd/zh/announcement/auction"
		}
		if config.HTTPRequestTimeout <= 0 {
			config.HTTPRequestTimeout = 10 * time.Second
		}
	}

	return &TWSEAuctionService{
		configuration: config,
		httpClient:    shared.NewBrowserClient(config.HTTPRequestTimeout, config.InsecureSkipVerify),
		metrics:       shared.NewServiceMetrics("TWSE_Auction_Service"),
	}
}

// Metrics returns the service's fetch metrics tracker.
func (service *TWSEAuctionService) Metrics() *shared.ServiceMetrics {
	return service.metrics
}

// auctionAnnouncementPayload mirrors the JSON shape of the TWSE response. Rows
// are arrays of loosely typed values; fields optionally names each column.
type auctionAnnouncementPayload struct {
	Fields []string        `json:"fields"`
	Data   [][]interface{} `json:"data"`
}

// rawBodySnippetLimit caps how much of an unrecognized response body is quoted
// back in diagnostics.
const rawBodySnippetLimit = 200

// Fetch retrieves the auction announcement feed and maps it into normalized
// records. Exactly one of (non-empty records, error) is meaningful on return;
// an empty feed is signalled through FetchResult.NoData with a nil error. The
// function never panics past its own boundary.
func (service *TWSEAuctionService) Fetch(ctx context.Context) (result *FetchResult, err error) {
	fetchStart := time.Now()
	logger := logrus.WithFields(logrus.Fields{
		"component": "TWSEAuctionService",
		"method":    "Fetch",
		"fetch_id":  uuid.NewString(),
		"url":       service.configuration.AuctionURL,
	})

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.WithField("panic", recovered).Error("Panic while processing auction payload")
			result = nil
			err = shared.NewServiceError(
				shared.ErrorCategoryProcessing,
				"PAYLOAD_PANIC",
				fmt.Sprintf("unexpected payload structure: %v", recovered),
				"TWSE_Auction_Service",
				"fetch",
				nil,
			)
		}
		service.recordFetch(err == nil, time.Since(fetchStart), result)
	}()

	httpRequest, requestError := http.NewRequestWithContext(ctx, http.MethodGet, service.configuration.AuctionURL, nil)
	if requestError != nil {
		return nil, shared.WrapError(requestError, shared.ErrorCategoryNetwork, "REQUEST_BUILD_FAILED", "TWSE_Auction_Service", "fetch")
	}
	shared.SetBrowserLikeHeaders(httpRequest, "application/json, text/plain, */*")

	httpResponse, executionError := service.httpClient.Do(httpRequest)
	if executionError != nil {
		logger.WithError(executionError).Error("Auction announcement request failed")
		return nil, shared.WrapError(executionError, shared.ErrorCategoryNetwork, "REQUEST_FAILED", "TWSE_Auction_Service", "fetch")
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		logger.WithField("status_code", httpResponse.StatusCode).Error("Auction announcement request returned non-200 status")
		return nil, shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"UNEXPECTED_STATUS",
			fmt.Sprintf("auction endpoint returned HTTP %d: %s", httpResponse.StatusCode, http.StatusText(httpResponse.StatusCode)),
			"TWSE_Auction_Service",
			"fetch",
			nil,
		)
	}

	bodyBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return nil, shared.WrapError(readError, shared.ErrorCategoryNetwork, "BODY_READ_FAILED", "TWSE_Auction_Service", "fetch")
	}

	// Decode into a generic map first so a response without a data key can be
	// distinguished from one whose data key is empty.
	var rawPayload map[string]json.RawMessage
	if jsonParseError := json.Unmarshal(bodyBytes, &rawPayload); jsonParseError != nil {
		logger.WithError(jsonParseError).Error("Auction announcement body is not valid JSON")
		return nil, shared.NewServiceError(
			shared.ErrorCategoryProcessing,
			"INVALID_JSON",
			fmt.Sprintf("response is not valid JSON, body starts with: %s", truncateBody(bodyBytes)),
			"TWSE_Auction_Service",
			"fetch",
			jsonParseError,
		)
	}

	if _, hasData := rawPayload["data"]; !hasData {
		logger.Error("Auction announcement payload has no data key")
		return nil, shared.NewServiceError(
			shared.ErrorCategoryProcessing,
			"MISSING_DATA_KEY",
			fmt.Sprintf("payload has no data key, source format may have changed, body starts with: %s", truncateBody(bodyBytes)),
			"TWSE_Auction_Service",
			"fetch",
			nil,
		)
	}

	var payload auctionAnnouncementPayload
	if jsonParseError := json.Unmarshal(bodyBytes, &payload); jsonParseError != nil {
		return nil, shared.NewServiceError(
			shared.ErrorCategoryProcessing,
			"UNEXPECTED_SHAPE",
			fmt.Sprintf("payload shape not recognized, body starts with: %s", truncateBody(bodyBytes)),
			"TWSE_Auction_Service",
			"fetch",
			jsonParseError,
		)
	}

	if len(payload.Data) == 0 {
		logger.Info("Auction announcement feed is currently empty")
		return &FetchResult{NoData: true}, nil
	}

	mapper := NewRowMapper(payload.Fields)
	records := make([]models.AuctionRecord, 0, len(payload.Data))
	rowsSkipped := 0

	for _, rawRow := range payload.Data {
		record, ok := mapper.MapRow(stringifyRow(rawRow))
		if !ok {
			rowsSkipped++
			continue
		}
		records = append(records, *record)
	}

	logger.WithFields(logrus.Fields{
		"records_mapped": len(records),
		"rows_skipped":   rowsSkipped,
		"named_columns":  len(payload.Fields) > 0,
	}).Info("Auction announcement feed fetched")

	return &FetchResult{Records: records, RowsSkipped: rowsSkipped}, nil
}

func (service *TWSEAuctionService) recordFetch(success bool, duration time.Duration, result *FetchResult) {
	rowsSkipped := 0
	if result != nil {
		rowsSkipped = result.RowsSkipped
	}
	service.metrics.RecordFetch(success, duration, rowsSkipped)
}

// stringifyRow flattens one loosely typed payload row into strings. The feed
// mostly carries strings but the occasional numeric cell appears.
func stringifyRow(rawRow []interface{}) []string {
	row := make([]string, len(rawRow))
	for i, cell := range rawRow {
		switch value := cell.(type) {
		case string:
			row[i] = value
		case float64:
			row[i] = formatJSONNumber(value)
		case nil:
			row[i] = ""
		default:
			row[i] = fmt.Sprintf("%v", value)
		}
	}
	return row
}

// formatJSONNumber renders a JSON number without a trailing ".000000" when the
// value is integral.
func formatJSONNumber(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}

func truncateBody(body []byte) string {
	if len(body) > rawBodySnippetLimit {
		return string(body[:rawBodySnippetLimit]) + "..."
	}
	return string(body)
}
