package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

type Options struct {
	// Token is the sink's public write token stamped on every event.
	Token              string
	QualifyingStatuses []string
	// LegacyItemPrice fills ItemSummary.ItemPrice with the line item's display
	// name instead of its price, matching events already stored in Klaviyo.
	LegacyItemPrice bool
}

type Service struct {
	log     *slog.Logger
	metrics *metrics.Registry

	token           string
	statuses        map[string]struct{}
	legacyItemPrice bool

	validate *validator.Validate
	now      func() time.Time
}

type Transformed struct {
	Order    models.OrderEvent
	Products models.OrderProductGroup
}

func New(log *slog.Logger, metrics *metrics.Registry, opts Options) *Service {
	statuses := make(map[string]struct{}, len(opts.QualifyingStatuses))
	for _, status := range opts.QualifyingStatuses {
		statuses[status] = struct{}{}
	}

	return &Service{
		log:             log,
		metrics:         metrics,
		token:           opts.Token,
		statuses:        statuses,
		legacyItemPrice: opts.LegacyItemPrice,
		validate:        validator.New(),
		now:             time.Now,
	}
}

// Transform maps one order to its "Placed Order" event and its "Ordered
// Product" events. ErrNotQualifying is returned for orders outside the
// qualifying status set and ErrInvalidOrder for orders missing required data.
func (s *Service) Transform(order *models.RawOrder) (Transformed, error) {
	const op = "services.transform.Transform"

	if order == nil {
		return Transformed{}, fmt.Errorf("%s: nil order: %w", op, internalErrors.ErrInvalidOrder)
	}

	if _, ok := s.statuses[order.FinancialStatus]; !ok {
		return Transformed{}, fmt.Errorf("%s: order %d has status %q: %w",
			op, order.ID, order.FinancialStatus, internalErrors.ErrNotQualifying)
	}

	if err := s.validate.Struct(order); err != nil {
		return Transformed{}, fmt.Errorf("%s: order %d: %w: %v", op, order.ID, internalErrors.ErrInvalidOrder, err)
	}

	identity := customerIdentity(order.Customer)

	items := make([]models.ItemSummary, 0, len(order.LineItems))
	itemNames := make([]string, 0, len(order.LineItems))
	products := make([]models.ProductEvent, 0, len(order.LineItems))

	for _, item := range order.LineItems {
		items = append(items, s.itemSummary(item))
		itemNames = append(itemNames, item.Name)
		products = append(products, s.productEvent(identity, item))
	}

	discountCodes := make([]models.DiscountCode, 0, len(order.DiscountCodes))
	discountCodes = append(discountCodes, order.DiscountCodes...)

	orderEvent := models.OrderEvent{
		Token:              s.token,
		Event:              models.EventPlacedOrder,
		CustomerProperties: customerProperties(order.Customer),
		Properties: models.OrderProperties{
			EventID:         order.ID,
			Value:           order.TotalPrice.InexactFloat64(),
			ItemNames:       itemNames,
			DiscountCodes:   discountCodes,
			DiscountValue:   order.TotalDiscounts.InexactFloat64(),
			Items:           items,
			BillingAddress:  eventAddress(order.BillingAddress),
			ShippingAddress: eventAddress(order.ShippingAddress),
		},
		Time: s.now().Unix(),
	}

	return Transformed{
		Order: orderEvent,
		Products: models.OrderProductGroup{
			OrderID:  order.ID,
			Products: products,
		},
	}, nil
}

// TransformAll transforms orders in input order. Filtered and invalid orders
// are logged and leave no gap; the two returned slices are index aligned.
func (s *Service) TransformAll(ctx context.Context, orders []models.RawOrder) ([]models.OrderEvent, []models.OrderProductGroup) {
	const op = "services.transform.TransformAll"

	log := s.log.With(slog.String("op", op))

	orderEvents := make([]models.OrderEvent, 0, len(orders))
	groups := make([]models.OrderProductGroup, 0, len(orders))

	for i := range orders {
		transformed, err := s.Transform(&orders[i])
		if err != nil {
			switch {
			case errors.Is(err, internalErrors.ErrNotQualifying):
				s.metrics.OrdersFiltered.Inc()
				log.DebugContext(ctx, "order filtered",
					slog.Int64("order_id", orders[i].ID),
					slog.String("financial_status", orders[i].FinancialStatus),
				)
			default:
				s.metrics.OrdersInvalid.Inc()
				log.WarnContext(ctx, "order skipped", slog.Int64("order_id", orders[i].ID), logger.Err(err))
			}

			continue
		}

		orderEvents = append(orderEvents, transformed.Order)
		groups = append(groups, transformed.Products)
	}

	log.InfoContext(ctx, "orders transformed",
		slog.Int("input", len(orders)),
		slog.Int("order_events", len(orderEvents)),
	)

	return orderEvents, groups
}

func (s *Service) itemSummary(item models.LineItem) models.ItemSummary {
	var price any = item.Price.InexactFloat64()
	if s.legacyItemPrice {
		price = item.Name
	}

	return models.ItemSummary{
		ProductID:   cloneInt64(item.ProductID),
		SKU:         item.SKU,
		ProductName: item.Title,
		Quantity:    item.Quantity,
		ItemPrice:   price,
	}
}

func (s *Service) productEvent(identity models.CustomerIdentity, item models.LineItem) models.ProductEvent {
	return models.ProductEvent{
		Token:              s.token,
		Event:              models.EventOrderedProduct,
		CustomerProperties: identity,
		Properties: models.ProductProperties{
			EventID:     item.ID,
			Value:       item.Price.InexactFloat64(),
			ProductID:   cloneInt64(item.ProductID),
			SKU:         item.SKU,
			ProductName: item.Title,
			Quantity:    item.Quantity,
		},
	}
}
