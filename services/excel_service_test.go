package services

import (
	"bytes"
	"testing"

	"github.com/angelwang333/IPO-info/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbookSheetLayout(t *testing.T) {
	classification := Classification{
		Ongoing: []models.AuctionRecord{{
			AuctionPeriod: "113/11/12~113/11/14",
			SecurityCode:  "7001",
			SecurityName:  "測試科技",
		}},
		Listed: []models.AuctionRecord{{
			AuctionPeriod:  "113/10/01~113/10/03",
			SecurityCode:   "7002",
			SecurityName:   "上市公司",
			ListingDateRaw: "113/10/15",
		}},
	}

	data, err := NewExcelExportService().BuildWorkbook(classification)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	assert.Equal(t, []string{
		models.SheetOngoing,
		models.SheetAwaitingListing,
		models.SheetListed,
	}, workbook.GetSheetList(), "three fixed sheet names, default sheet removed")

	rows, err := workbook.GetRows(models.SheetOngoing)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, models.CanonicalColumns(), rows[0], "header row carries canonical field names")
	require.Len(t, rows, 2)
	assert.Equal(t, "113/11/12~113/11/14", rows[1][0])
	assert.Equal(t, "7001", rows[1][1])
	assert.Equal(t, "測試科技", rows[1][2])

	listedRows, err := workbook.GetRows(models.SheetListed)
	require.NoError(t, err)
	require.Len(t, listedRows, 2)
	assert.Equal(t, "7002", listedRows[1][1])
}

func TestBuildWorkbookEmptyBucketsStillHaveHeaders(t *testing.T) {
	data, err := NewExcelExportService().BuildWorkbook(Classification{})
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	for _, sheet := range []string{models.SheetOngoing, models.SheetAwaitingListing, models.SheetListed} {
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "empty bucket renders only the header row")
		assert.Equal(t, models.CanonicalColumns(), rows[0])
	}
}
