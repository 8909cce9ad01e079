package proposal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/proposal"
	"github.com/rpggio/quotedesk/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type backendMock struct {
	mock.Mock
}

func (m *backendMock) Customers(ctx context.Context) ([]catalog.Customer, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Customer); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *backendMock) Products(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.Product); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *backendMock) Create(ctx context.Context, resource catalog.Resource, body any) (string, error) {
	args := m.Called(ctx, resource, body)
	return args.String(0), args.Error(1)
}

func TestService_LoadPickersDegradesEachListIndependently(t *testing.T) {
	ctx := context.Background()
	backend := &backendMock{}
	rec := &mocks.ActivityRecorder{}
	backend.On("Customers", ctx).Return(nil, errors.New("connection refused"))
	backend.On("Products", ctx).Return([]catalog.Product{productA}, nil)
	rec.On("Record", ctx, activity.TypeFetchDegraded, "customers", "connection refused").Return()

	svc := proposal.NewService(backend, rec, nil)
	p := svc.LoadPickers(ctx)
	require.NotNil(t, p.Customers)
	require.Empty(t, p.Customers)
	require.Len(t, p.Products, 1)
	rec.AssertExpectations(t)
}

func TestService_Quote(t *testing.T) {
	ctx := context.Background()
	backend := &backendMock{}
	backend.On("Products", ctx).Return([]catalog.Product{productA, productB}, nil)

	svc := proposal.NewService(backend, nil, nil)
	d, err := svc.Quote(ctx, []proposal.QuoteLine{
		{ProductID: 1, Quantity: "3"},
		{ProductID: 2, Quantity: "2"},
	})
	require.NoError(t, err)
	require.Equal(t, 40.0, d.Total())

	_, err = svc.Quote(ctx, []proposal.QuoteLine{{ProductID: 77, Quantity: "1"}})
	require.ErrorIs(t, err, proposal.ErrUnknownProduct)
}

func TestService_SubmitValidatesFirst(t *testing.T) {
	backend := &backendMock{}
	svc := proposal.NewService(backend, nil, nil)

	_, err := svc.Submit(context.Background(), proposal.NewDraft())
	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	backend.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SubmitPostsRequest(t *testing.T) {
	ctx := context.Background()
	backend := &backendMock{}
	rec := &mocks.ActivityRecorder{}

	d := proposal.NewDraft()
	d.CustomerID = "cust-1"
	d.ExpiresOn = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	d.Term = proposal.Term{Count: 1, Unit: proposal.TermYears}
	d.SetQuantity(d.AddLine(productB), "2")

	backend.On("Create", ctx, catalog.Proposals, mock.MatchedBy(func(r proposal.Request) bool {
		return r.ID == d.ID && r.TotalPrice == 10
	})).Return("Proposal created", nil)
	rec.On("Record", ctx, activity.TypeProposalSubmitted, "proposals", mock.Anything).Return()

	svc := proposal.NewService(backend, rec, nil)
	msg, err := svc.Submit(ctx, d)
	require.NoError(t, err)
	require.Equal(t, "Proposal created", msg)
	rec.AssertExpectations(t)
}

func TestService_SubmitFailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	backend := &backendMock{}
	rec := &mocks.ActivityRecorder{}
	boom := errors.New("500")

	d := proposal.NewDraft()
	d.CustomerID = "cust-1"
	d.ExpiresOn = time.Now()
	d.Term = proposal.Term{Count: 1, Unit: proposal.TermMonths}

	backend.On("Create", ctx, catalog.Proposals, mock.Anything).Return("", boom)
	rec.On("Record", ctx, activity.TypeCreateFailed, "proposals", mock.Anything).Return()

	svc := proposal.NewService(backend, rec, nil)
	_, err := svc.Submit(ctx, d)
	require.ErrorIs(t, err, boom)
	rec.AssertExpectations(t)
}
