package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistReady_Boundary(t *testing.T) {
	point := dec("100.00")

	assert.False(t, domain.ArtistReady(dec("100.00"), point, 1, false), "equal to payout point")
	assert.True(t, domain.ArtistReady(dec("100.01"), point, 1, false), "one cent above")
	assert.False(t, domain.ArtistReady(dec("100.01"), point, 0, false), "no payment method")
	assert.False(t, domain.ArtistReady(dec("100.01"), point, 2, true), "payouts held")
}

func TestNewArtistBalance(t *testing.T) {
	artist := domain.Artist{ArtistID: "a1", Name: "Ada", PayoutPoint: dec("50")}
	b := domain.NewArtistBalance(artist, dec("640.00"), dec("500.00"), 1)

	assert.True(t, dec("140.00").Equal(b.Balance))
	assert.True(t, b.ReadyForPayout)
	assert.Equal(t, "a1", b.ArtistID)
}

func TestSubLabelTotals_Balance(t *testing.T) {
	totals := domain.SubLabelTotals{
		GrossMusicEarnings:     dec("1000.00"),
		RoyaltiesPaid:          dec("640.00"),
		PlatformFees:           dec("16.00"),
		EventGrossSales:        dec("300.00"),
		EventPlatformFees:      dec("30.00"),
		LabelPaymentsReceived:  dec("200.00"),
		PayoutDestinationCount: 1,
	}
	assert.True(t, dec("414.00").Equal(totals.Balance()))

	b := domain.NewSubLabelBalance(domain.SubLabel{SubLabelID: "s1"}, totals)
	assert.True(t, b.ReadyForPayout)

	totals.LabelPaymentsReceived = dec("614.00")
	b = domain.NewSubLabelBalance(domain.SubLabel{SubLabelID: "s1"}, totals)
	assert.False(t, b.ReadyForPayout, "zero balance is not ready")
}

func TestParsePayoutSortField(t *testing.T) {
	f, err := domain.ParsePayoutSortField("")
	require.NoError(t, err)
	assert.Equal(t, domain.SortByBalance, f)

	f, err = domain.ParsePayoutSortField("Created_At")
	require.NoError(t, err)
	assert.Equal(t, domain.SortByCreatedAt, f)

	_, err = domain.ParsePayoutSortField("balance; DROP TABLE royalties")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := domain.Paginate(items, domain.PayoutQuery{Page: 2, Limit: 2}.Normalize())
	assert.Equal(t, []int{3, 4}, p.Items)
	assert.Equal(t, 5, p.Total)

	p = domain.Paginate(items, domain.PayoutQuery{Page: 3, Limit: 2}.Normalize())
	assert.Equal(t, []int{5}, p.Items)

	p = domain.Paginate(items, domain.PayoutQuery{Page: 9, Limit: 2}.Normalize())
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}
	q := domain.PayoutQuery{Page: math.MaxInt/4 + 3, Limit: 20}.Normalize()

	assert.Equal(t, math.MaxInt, q.Offset())
	p := domain.Paginate(items, q)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.Total)

	p = domain.Paginate(items, domain.PayoutQuery{Page: math.MaxInt, Limit: domain.MaxPayoutPageLimit}.Normalize())
	assert.Empty(t, p.Items)
}
