package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/payload"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/deliver"
	deliverMocks "github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/deliver/mocks"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/migration/mocks"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/services/transform"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

var (
	from = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC)
)

func rawOrder(id int64, status string, items int) models.RawOrder {
	order := models.RawOrder{
		ID:              id,
		FinancialStatus: status,
		Customer:        &models.Customer{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
		TotalPrice:      decimal.RequireFromString("30"),
	}
	for i := 0; i < items; i++ {
		order.LineItems = append(order.LineItems, models.LineItem{
			ID:       id*10 + int64(i+1),
			Name:     fmt.Sprintf("item %d", i+1),
			Quantity: 1,
			Price:    decimal.RequireFromString("10"),
		})
	}

	return order
}

type fixture struct {
	fetcher   *mocks.MockOrderFetcher
	tracker   *deliverMocks.MockTracker
	publisher *mocks.MockReportPublisher
	svc       *Service
}

func newFixture(t *testing.T) fixture {
	ctl := gomock.NewController(t)

	log := logger.NewDiscardLogger()
	registry := metrics.NewRegistry()

	f := fixture{
		fetcher:   mocks.NewMockOrderFetcher(ctl),
		tracker:   deliverMocks.NewMockTracker(ctl),
		publisher: mocks.NewMockReportPublisher(ctl),
	}

	transformer := transform.New(log, registry, transform.Options{
		Token:              "pk_test",
		QualifyingStatuses: []string{models.FinancialStatusPaid, models.FinancialStatusRefunded},
	})
	deliverer := deliver.New(log, registry, f.tracker, deliver.Options{Workers: 1, Timeout: time.Second})

	f.svc = New(log, f.fetcher, transformer, deliverer, f.publisher)

	return f
}

func TestRunDeliversQualifyingOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.fetcher.EXPECT().FetchOrders(gomock.Any(), from, to).Return([]models.RawOrder{
		rawOrder(1, models.FinancialStatusPaid, 2),
		rawOrder(2, models.FinancialStatusPending, 1),
		rawOrder(3, models.FinancialStatusRefunded, 1),
	}, nil)

	var tracked []string
	f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, token string) (json.RawMessage, error) {
		var event struct {
			Event      string `json:"event"`
			Properties struct {
				EventID int64 `json:"$event_id"`
			} `json:"properties"`
		}
		require.NoError(t, payload.Decode(token, &event))
		tracked = append(tracked, fmt.Sprintf("%s:%d", event.Event, event.Properties.EventID))

		return json.RawMessage(`1`), nil
	}).Times(5)

	var published models.Report
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, report models.Report) error {
		published = report
		return nil
	})

	report, err := f.svc.Run(ctx, from, to)
	require.NoError(t, err)

	require.Equal(t, []string{
		"Placed Order:1",
		"Ordered Product:11",
		"Ordered Product:12",
		"Placed Order:3",
		"Ordered Product:31",
	}, tracked)

	require.NotEqual(t, uuid.Nil, report.RunID)
	require.Equal(t, from, report.CreatedAtMin)
	require.Equal(t, to, report.CreatedAtMax)
	require.Equal(t, 3, report.OrdersFetched)
	require.Equal(t, 2, report.OrderEvents)
	require.Len(t, report.Results, 2)
	require.Equal(t, int64(1), report.Results[0].Order)
	require.Len(t, report.Results[0].Products, 2)
	require.Equal(t, int64(3), report.Results[1].Order)
	require.Zero(t, report.FailedEvents())
	require.Equal(t, report, published)
}

func TestRunPendingOnlyMakesNoTrackCalls(t *testing.T) {
	f := newFixture(t)

	f.fetcher.EXPECT().FetchOrders(gomock.Any(), from, to).Return([]models.RawOrder{
		rawOrder(1, models.FinancialStatusPending, 3),
	}, nil)
	f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	report, err := f.svc.Run(context.Background(), from, to)
	require.NoError(t, err)
	require.Equal(t, 1, report.OrdersFetched)
	require.Zero(t, report.OrderEvents)
	require.Empty(t, report.Results)
}

func TestRunFetchErrorIsFatal(t *testing.T) {
	f := newFixture(t)

	fetchErr := fmt.Errorf("shopify: %w", internalErrors.ErrFetch)
	f.fetcher.EXPECT().FetchOrders(gomock.Any(), from, to).Return(nil, fetchErr)
	f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Times(0)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	report, err := f.svc.Run(context.Background(), from, to)
	require.ErrorIs(t, err, internalErrors.ErrFetch)
	require.Equal(t, models.Report{}, report)
}

func TestRunDeliveryFailuresDoNotFailRun(t *testing.T) {
	f := newFixture(t)

	f.fetcher.EXPECT().FetchOrders(gomock.Any(), from, to).Return([]models.RawOrder{
		rawOrder(1, models.FinancialStatusPaid, 1),
	}, nil)
	gomock.InOrder(
		f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Return(nil, internalErrors.ErrDelivery),
		f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Return(json.RawMessage(`1`), nil),
	)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	report, err := f.svc.Run(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.False(t, report.Results[0].OrderOutcome.Success)
	require.True(t, report.Results[0].Products[0].Outcome.Success)
	require.Equal(t, 1, report.FailedEvents())
}

func TestRunPublishErrorKeepsReport(t *testing.T) {
	f := newFixture(t)

	publishErr := errors.New("kafka unavailable")

	f.fetcher.EXPECT().FetchOrders(gomock.Any(), from, to).Return([]models.RawOrder{
		rawOrder(1, models.FinancialStatusPaid, 1),
	}, nil)
	f.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Return(json.RawMessage(`1`), nil).Times(2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(publishErr)

	report, err := f.svc.Run(context.Background(), from, to)
	require.ErrorIs(t, err, publishErr)
	require.Len(t, report.Results, 1)
	require.True(t, report.Results[0].OrderOutcome.Success)
}
