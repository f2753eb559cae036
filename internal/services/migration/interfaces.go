package migration

import (
	"context"
	"time"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type OrderFetcher interface {
	FetchOrders(ctx context.Context, from, to time.Time) ([]models.RawOrder, error)
}

type Transformer interface {
	TransformAll(ctx context.Context, orders []models.RawOrder) ([]models.OrderEvent, []models.OrderProductGroup)
}

type Deliverer interface {
	DeliverAll(ctx context.Context, orderEvents []models.OrderEvent, groups []models.OrderProductGroup) []models.DeliveryResult
}

type ReportPublisher interface {
	Publish(ctx context.Context, report models.Report) error
}
