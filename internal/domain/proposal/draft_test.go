package proposal_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/stretchr/testify/require"
)

var (
	productA = catalog.Product{ID: 1, Name: "Seat licence", UnitPrice: 10}
	productB = catalog.Product{ID: 2, Name: "Support", UnitPrice: 5}
)

func TestDraft_TotalTracksEveryChange(t *testing.T) {
	d := proposal.NewDraft()
	require.Zero(t, d.Total())

	a := d.AddLine(productA)
	require.Zero(t, d.Total())
	d.SetQuantity(a, "3")
	require.Equal(t, 30.0, d.Total())

	b := d.AddLine(productB)
	require.Equal(t, 30.0, d.Total())
	d.SetQuantity(b, "2")
	require.Equal(t, 40.0, d.Total())

	d.SetQuantity(a, "1")
	require.Equal(t, 20.0, d.Total())
}

func TestDraft_InvalidQuantitiesBecomeZero(t *testing.T) {
	d := proposal.NewDraft()
	i := d.AddLine(productA)

	for _, raw := range []string{"abc", "-5", "", "NaN", "Inf", "-Inf"} {
		d.SetQuantity(i, "4")
		d.SetQuantity(i, raw)
		require.Zero(t, d.Lines()[i].Quantity, raw)
		require.Zero(t, d.Total(), raw)
	}

	d.SetQuantity(i, " 2.5 ")
	require.Equal(t, 25.0, d.Total())
}

func TestDraft_OutOfRangeIndexIsIgnored(t *testing.T) {
	d := proposal.NewDraft()
	d.AddLine(productA)
	d.SetQuantity(0, "2")

	d.SetQuantity(5, "100")
	d.SetQuantity(-1, "100")
	require.Equal(t, 20.0, d.Total())
}

func TestDraft_DuplicateProductAppendsSecondLine(t *testing.T) {
	d := proposal.NewDraft()
	d.SetQuantity(d.AddLine(productA), "1")
	d.SetQuantity(d.AddLine(productA), "2")

	require.Len(t, d.Lines(), 2)
	require.Equal(t, 30.0, d.Total())
}

func TestDraft_NegativeOrNonFinitePriceClampsToZero(t *testing.T) {
	d := proposal.NewDraft()
	d.SetQuantity(d.AddLine(catalog.Product{ID: 9, UnitPrice: -3}), "2")
	d.SetQuantity(d.AddLine(catalog.Product{ID: 10, UnitPrice: math.Inf(1)}), "2")
	require.Zero(t, d.Total())
}

func TestDraft_LinesReturnsCopy(t *testing.T) {
	d := proposal.NewDraft()
	d.AddLine(productA)
	lines := d.Lines()
	lines[0].Quantity = 99
	require.Zero(t, d.Lines()[0].Quantity)
}

func TestDraft_ValidateReportsMissingFields(t *testing.T) {
	d := proposal.NewDraft()
	require.NotEmpty(t, d.ID)

	err := d.Validate()
	var verr *catalog.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{
		"Please select a customer!",
		"Please select the proposal expiry date!",
		"Term is required!",
	}, verr.Messages)

	d.CustomerID = "cust-1"
	d.ExpiresOn = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	d.Term = proposal.Term{Count: 12, Unit: proposal.TermMonths}
	require.NoError(t, d.Validate())
}

func TestDraft_Request(t *testing.T) {
	d := proposal.NewDraft()
	d.CustomerID = "cust-1"
	d.Reference = " Q-7 "
	d.ExpiresOn = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	d.Term = proposal.Term{Count: 4, Unit: proposal.TermQuarters}
	d.SetQuantity(d.AddLine(productA), "3")

	req, err := d.Request()
	require.NoError(t, err)
	require.Equal(t, d.ID, req.ID)
	require.Equal(t, "Q-7", req.Reference)
	require.Equal(t, "2026-12-31", req.ProposalExpires)
	require.Equal(t, 30.0, req.TotalPrice)
	require.Len(t, req.Products, 1)
	require.Equal(t, "4 quarters", req.Term.String())

	_, err = proposal.NewDraft().Request()
	require.Error(t, err)
}

func TestParseTermUnit(t *testing.T) {
	u, err := proposal.ParseTermUnit("Year")
	require.NoError(t, err)
	require.Equal(t, proposal.TermYears, u)

	u, err = proposal.ParseTermUnit("")
	require.NoError(t, err)
	require.Equal(t, proposal.TermMonths, u)

	_, err = proposal.ParseTermUnit("weeks")
	require.Error(t, err)
}
