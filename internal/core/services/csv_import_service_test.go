package services_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/SscSPs/royalty_settlement_app/internal/core/services"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMapHeaders_FuzzyHeaders(t *testing.T) {
	mapping := services.MapHeaders([]string{"Cat. No", "Title", "Revenue ($)", "Notes"})

	require.NotNil(t, mapping[domain.FieldCatalogNo])
	assert.Equal(t, "Cat. No", mapping[domain.FieldCatalogNo].Header)
	assert.Equal(t, 0, mapping[domain.FieldCatalogNo].Index)

	require.NotNil(t, mapping[domain.FieldEarningAmount])
	assert.Equal(t, "Revenue ($)", mapping[domain.FieldEarningAmount].Header)
	assert.GreaterOrEqual(t, mapping[domain.FieldEarningAmount].Score, services.HeaderMatchThreshold)

	require.NotNil(t, mapping[domain.FieldReleaseTitle])
	assert.Equal(t, 1, mapping[domain.FieldReleaseTitle].Index)

	for field, m := range mapping {
		assert.NotEqual(t, "Notes", m.Header, "Notes must stay unmapped but was mapped to %s", field)
	}
}

func TestMapHeaders_HeaderClaimedOnce(t *testing.T) {
	// "Royalty" is an amount synonym; with a single column it cannot also be the title.
	mapping := services.MapHeaders([]string{"Royalty"})
	require.NotNil(t, mapping[domain.FieldEarningAmount])
	assert.Nil(t, mapping[domain.FieldReleaseTitle])
	assert.Nil(t, mapping[domain.FieldCatalogNo])
}

func TestMapHeaders_NothingSimilar(t *testing.T) {
	mapping := services.MapHeaders([]string{"Territory", "ISRC", ""})
	assert.Empty(t, mapping)
}

func newPreviewStore() *memory.Store {
	s := memory.NewStore()
	s.AddRelease(domain.Release{ReleaseID: "r1", BrandID: brandID, CatalogNumber: "CAT-001", Title: "Night Drive"})
	s.AddRelease(domain.Release{ReleaseID: "r2", BrandID: brandID, CatalogNumber: "CAT-002", Title: "Echoes"})
	s.AddRelease(domain.Release{ReleaseID: "r3", BrandID: brandID, Title: "Echoes"})
	s.AddRelease(domain.Release{ReleaseID: "r4", BrandID: brandID, CatalogNumber: "CAT-004", Title: "Straße"})
	s.AddRelease(domain.Release{ReleaseID: "other", BrandID: "brand-2", CatalogNumber: "CAT-999", Title: "Elsewhere"})
	return s
}

func TestPreviewEarningsFile_MatchesRows(t *testing.T) {
	svc := services.NewCsvImportService(newPreviewStore(), services.WithPreviewWorkers(3))
	file := strings.Join([]string{
		"Cat. No,Title,Revenue ($),Notes",
		"cat-001,Ignored Title,\"$1,200.50\",q1", // catalog, case-folded
		",Echoes,10.00,",                         // duplicate title: unmatched
		",night drive,5.25,",                     // unique title
		"CAT-777,Night Drive,3.00,",              // catalog present but unknown: no title fallback
		",Unknown,abc,",                          // unparsable amount: skipped
		",,,",                                    // blank
		"CAT-999,Elsewhere,7.00,other tenant",    // not visible to brand-1
		",STRASSE,2.00,",                         // full case folding
	}, "\n")

	preview, err := svc.PreviewEarningsFile(context.Background(), brandID, "march.csv", []byte(file))
	require.NoError(t, err)

	s := preview.Summary
	assert.Equal(t, 6, s.TotalRows)
	assert.Equal(t, 1, s.TotalSkipped)
	assert.Equal(t, 3, s.TotalUnmatched)
	assert.Equal(t, "1207.75", s.TotalEarningAmount.StringFixed(2))
	assert.Equal(t, "Cat. No", s.ColumnMapping[domain.FieldCatalogNo].Header)

	rows := map[int]domain.PreviewRow{}
	for _, r := range preview.Rows {
		rows[r.RowNumber] = r
	}

	require.True(t, rows[1].Matched())
	assert.Equal(t, "r1", rows[1].MatchedRelease.ReleaseID)
	assert.Equal(t, domain.MatchByCatalogNo, rows[1].MatchedRelease.MatchedBy)
	assert.Equal(t, 100, *rows[1].MatchScore)
	assert.Equal(t, "1200.5", rows[1].EarningAmount.String())
	assert.Equal(t, "q1", rows[1].OriginalData["Notes"])

	assert.False(t, rows[2].Matched(), "duplicate titles must not be assigned arbitrarily")
	assert.Nil(t, rows[2].MatchScore)

	require.True(t, rows[3].Matched())
	assert.Equal(t, "r1", rows[3].MatchedRelease.ReleaseID)
	assert.Equal(t, domain.MatchByReleaseTitle, rows[3].MatchedRelease.MatchedBy)

	assert.False(t, rows[4].Matched())
	_, present := rows[5]
	assert.False(t, present, "unparsable amounts are skipped, not listed")
	assert.False(t, rows[7].Matched())

	require.True(t, rows[8].Matched())
	assert.Equal(t, "r4", rows[8].MatchedRelease.ReleaseID)
}

func TestPreviewEarningsFile_DuplicateTitlesOnly(t *testing.T) {
	s := memory.NewStore()
	s.AddRelease(domain.Release{ReleaseID: "a", BrandID: brandID, Title: "Same Name"})
	s.AddRelease(domain.Release{ReleaseID: "b", BrandID: brandID, Title: "Same Name"})
	svc := services.NewCsvImportService(s)

	preview, err := svc.PreviewEarningsFile(context.Background(), brandID, "dup.csv", []byte("Release Title,Amount\nSame Name,12.00\n"))
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
	assert.False(t, preview.Rows[0].Matched())
	assert.Equal(t, 1, preview.Summary.TotalUnmatched)
	assert.True(t, preview.Summary.TotalEarningAmount.IsZero())
}

func TestPreviewEarningsFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Catalog Number", "Release", "Net Revenue"},
		{"CAT-002", "Echoes", "40.10"},
		{"", "Night Drive", "9.90"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	svc := services.NewCsvImportService(newPreviewStore())
	preview, err := svc.PreviewEarningsFile(context.Background(), brandID, "april.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 2, preview.Summary.TotalRows)
	assert.Equal(t, 0, preview.Summary.TotalUnmatched)
	assert.Equal(t, "50.00", preview.Summary.TotalEarningAmount.StringFixed(2))
	assert.Equal(t, "r2", preview.Rows[0].MatchedRelease.ReleaseID)
}

func TestPreviewEarningsFile_Rejects(t *testing.T) {
	svc := services.NewCsvImportService(newPreviewStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		fileName string
		data     string
	}{
		{"unsupported extension", "report.pdf", "Amount\n1.00\n"},
		{"empty file", "empty.csv", ""},
		{"no amount column", "titles.csv", "Title,Territory\nEchoes,DE\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PreviewEarningsFile(ctx, brandID, tt.fileName, []byte(tt.data))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPreviewEarningsFile_ManyRowsKeepOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("\ufeffCat No,Amount\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "CAT-001,%d.00\n", i)
	}
	svc := services.NewCsvImportService(newPreviewStore(), services.WithPreviewWorkers(8))

	preview, err := svc.PreviewEarningsFile(context.Background(), brandID, "bulk", []byte(b.String()))
	require.NoError(t, err)
	require.Len(t, preview.Rows, 500)
	for i, r := range preview.Rows {
		assert.Equal(t, i+1, r.RowNumber)
	}
	assert.Equal(t, "124750.00", preview.Summary.TotalEarningAmount.StringFixed(2))
	assert.Equal(t, "Cat No", preview.Summary.ColumnMapping[domain.FieldCatalogNo].Header)
}
