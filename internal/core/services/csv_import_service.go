package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strings"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/observability/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// exactMatchScore is reported for rows resolved by an exact identifier.
const exactMatchScore = 100

// csvImportService previews bulk earnings files. It only reads releases.
type csvImportService struct {
	BaseService
	releaseRepo portsrepo.ReleaseReader
	workers     int
	metrics     *metrics.SettlementMetrics
}

// CsvImportOption is a functional option for configuring the import preview.
type CsvImportOption func(*csvImportService)

// WithPreviewWorkers bounds the number of goroutines resolving rows.
func WithPreviewWorkers(n int) CsvImportOption {
	return func(s *csvImportService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithImportMetrics records preview row counts.
func WithImportMetrics(m *metrics.SettlementMetrics) CsvImportOption {
	return func(s *csvImportService) {
		s.metrics = m
	}
}

// NewCsvImportService creates the earnings file matcher.
func NewCsvImportService(releaseRepo portsrepo.ReleaseReader, options ...CsvImportOption) portssvc.CsvImportSvc {
	svc := &csvImportService{
		releaseRepo: releaseRepo,
		workers:     runtime.GOMAXPROCS(0),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CsvImportSvc = (*csvImportService)(nil)

// PreviewEarningsFile maps the headers, then resolves every row against the tenant's releases.
// Nothing is written.
func (s *csvImportService) PreviewEarningsFile(ctx context.Context, tenantID, fileName string, data []byte) (*domain.EarningsPreview, error) {
	table, err := readEarningsTable(fileName, data)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if len(table) == 0 || isBlankRow(table[0]) {
		return nil, apperrors.NewValidationError("file has no header row")
	}

	header := table[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	mapping := MapHeaders(header)
	if mapping[domain.FieldEarningAmount] == nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no column could be mapped to %s", domain.FieldEarningAmount))
	}

	releases, err := s.releaseRepo.ListReleasesByBrand(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load releases for import preview", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load releases: %w", err)
	}
	index := newReleaseIndex(releases)

	body := table[1:]
	resolved := make([]resolvedRow, len(body))
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunkRanges(len(body), s.workers) {
		g.Go(func() error {
			fold := cases.Fold()
			for i := chunk[0]; i < chunk[1]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				resolved[i] = resolveRow(i+1, header, body[i], mapping, index, fold)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	preview := &domain.EarningsPreview{
		FileName: fileName,
		Rows:     make([]domain.PreviewRow, 0, len(body)),
		Summary: domain.PreviewSummary{
			TotalEarningAmount: decimal.Zero,
			ColumnMapping:      mapping,
		},
	}
	for _, r := range resolved {
		if r.blank {
			continue
		}
		if !r.parsed {
			preview.Summary.TotalSkipped++
			continue
		}
		preview.Rows = append(preview.Rows, r.row)
		if r.row.Matched() {
			preview.Summary.TotalEarningAmount = preview.Summary.TotalEarningAmount.Add(r.row.EarningAmount)
		} else {
			preview.Summary.TotalUnmatched++
		}
	}
	preview.Summary.TotalRows = len(preview.Rows)

	matched := preview.Summary.TotalRows - preview.Summary.TotalUnmatched
	s.metrics.PreviewRows(matched, preview.Summary.TotalUnmatched, preview.Summary.TotalSkipped)
	s.LogInfo(ctx, "Earnings file previewed",
		slog.String("file_name", fileName),
		slog.Int("rows", preview.Summary.TotalRows),
		slog.Int("unmatched", preview.Summary.TotalUnmatched),
		slog.Int("skipped", preview.Summary.TotalSkipped))
	return preview, nil
}

type resolvedRow struct {
	row    domain.PreviewRow
	parsed bool
	blank  bool
}

// releaseIndex holds releases keyed by case-folded catalog number and title, in repository order.
type releaseIndex struct {
	byCatalog map[string][]domain.Release
	byTitle   map[string][]domain.Release
}

func newReleaseIndex(releases []domain.Release) *releaseIndex {
	fold := cases.Fold()
	idx := &releaseIndex{
		byCatalog: make(map[string][]domain.Release, len(releases)),
		byTitle:   make(map[string][]domain.Release, len(releases)),
	}
	for _, r := range releases {
		if k := identifierKey(fold, r.CatalogNumber); k != "" {
			idx.byCatalog[k] = append(idx.byCatalog[k], r)
		}
		if k := identifierKey(fold, r.Title); k != "" {
			idx.byTitle[k] = append(idx.byTitle[k], r)
		}
	}
	return idx
}

func identifierKey(fold cases.Caser, s string) string {
	return fold.String(strings.TrimSpace(s))
}

// parseAmount keeps only digits, dots and minus signs before parsing.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := nonAmountChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// resolveRow matches exactly, never fuzzily. A catalog number that is present decides the row on its
// own: no match leaves it unmatched, several matches take the first release. Titles must be unique.
func resolveRow(rowNumber int, header, row []string, mapping map[domain.CanonicalField]*domain.ColumnMatch, index *releaseIndex, fold cases.Caser) resolvedRow {
	if isBlankRow(row) {
		return resolvedRow{blank: true}
	}

	amount, ok := parseAmount(cell(row, mapping[domain.FieldEarningAmount].Index))
	if !ok {
		return resolvedRow{}
	}

	out := domain.PreviewRow{
		RowNumber:     rowNumber,
		OriginalData:  originalData(header, row),
		CatalogNo:     mappedCell(row, mapping[domain.FieldCatalogNo]),
		ReleaseTitle:  mappedCell(row, mapping[domain.FieldReleaseTitle]),
		EarningAmount: amount,
	}

	var match *domain.Release
	var kind domain.MatchKind
	if key := identifierKey(fold, out.CatalogNo); key != "" {
		if candidates := index.byCatalog[key]; len(candidates) > 0 {
			match, kind = &candidates[0], domain.MatchByCatalogNo
		}
	} else if key := identifierKey(fold, out.ReleaseTitle); key != "" {
		if candidates := index.byTitle[key]; len(candidates) == 1 {
			match, kind = &candidates[0], domain.MatchByReleaseTitle
		}
	}

	if match != nil {
		score := exactMatchScore
		out.MatchScore = &score
		out.MatchedRelease = &domain.MatchedRelease{
			ReleaseID:     match.ReleaseID,
			CatalogNumber: match.CatalogNumber,
			Title:         match.Title,
			MatchedBy:     kind,
		}
	}
	return resolvedRow{row: out, parsed: true}
}

func mappedCell(row []string, m *domain.ColumnMatch) string {
	if m == nil {
		return ""
	}
	return cell(row, m.Index)
}

// originalData keys each cell by its header; unnamed or duplicate headers get a positional key.
func originalData(header, row []string) map[string]string {
	data := make(map[string]string, len(row))
	for i, v := range row {
		key := ""
		if i < len(header) {
			key = strings.TrimSpace(header[i])
		}
		if _, dup := data[key]; key == "" || dup {
			key = fmt.Sprintf("column_%d", i+1)
		}
		data[key] = v
	}
	return data
}

// chunkRanges splits n items into at most parts contiguous [start, end) ranges.
func chunkRanges(n, parts int) [][2]int {
	if n == 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	size := (n + parts - 1) / parts
	ranges := make([][2]int, 0, parts)
	for start := 0; start < n; start += size {
		ranges = append(ranges, [2]int{start, min(start+size, n)})
	}
	return ranges
}
