package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/config"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/tracing"
)

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	errorBodyLimit    = 512
)

type Client struct {
	log        *slog.Logger
	metrics    *metrics.Registry
	httpClient *http.Client

	baseURL     string
	apiVersion  string
	accessToken string
	apiKey      string
	password    string
	status      string
	pageLimit   int
}

func New(log *slog.Logger, metrics *metrics.Registry, cfg config.ShopifyConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.myshopify.com", cfg.ShopName)
	}

	return &Client{
		log:         log,
		metrics:     metrics,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiVersion:  cfg.APIVersion,
		accessToken: cfg.AccessToken,
		apiKey:      cfg.APIKey,
		password:    cfg.Password,
		status:      cfg.Status,
		pageLimit:   cfg.PageLimit,
	}
}

type ordersPage struct {
	Orders *[]models.RawOrder `json:"orders"`
}

// FetchOrders returns every order created within [from, to], following
// cursor pagination. Any failure wraps ErrFetch.
func (c *Client) FetchOrders(ctx context.Context, from, to time.Time) ([]models.RawOrder, error) {
	const op = "clients.shopify.FetchOrders"

	log := c.log.With(slog.String("op", op))

	next := c.ordersURL(from, to)

	var orders []models.RawOrder
	for page := 1; next != ""; page++ {
		pageOrders, nextURL, err := c.fetchPage(ctx, next, page)
		if err != nil {
			return nil, fmt.Errorf("%s: page %d: %w", op, page, err)
		}

		orders = append(orders, pageOrders...)
		next = nextURL

		log.DebugContext(ctx, "orders page fetched", slog.Int("page", page), slog.Int("orders", len(pageOrders)))
	}

	c.metrics.OrdersFetched.Add(float64(len(orders)))

	log.InfoContext(ctx, "orders fetched",
		slog.String("created_at_min", from.Format(time.RFC3339)),
		slog.String("created_at_max", to.Format(time.RFC3339)),
		slog.Int("orders", len(orders)),
	)

	return orders, nil
}

func (c *Client) ordersURL(from, to time.Time) string {
	query := url.Values{}
	query.Set("created_at_min", from.Format(time.RFC3339))
	query.Set("created_at_max", to.Format(time.RFC3339))
	query.Set("limit", strconv.Itoa(c.pageLimit))
	if c.status != "" {
		query.Set("status", c.status)
	}

	return fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.baseURL, c.apiVersion, query.Encode())
}

func (c *Client) fetchPage(ctx context.Context, pageURL string, page int) (orders []models.RawOrder, next string, err error) {
	ctx, span := otel.Tracer(tracing.TracerName).Start(ctx, "shopify.fetch_page")
	span.SetAttributes(attribute.Int("page", page))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: build request: %v", internalErrors.ErrFetch, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set(accessTokenHeader, c.accessToken)
	} else {
		req.SetBasicAuth(c.apiKey, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", internalErrors.ErrFetch, err)
	}
	defer resp.Body.Close()

	c.metrics.FetchPages.Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, "", fmt.Errorf("%w: status %s: %s", internalErrors.ErrFetch, resp.Status, strings.TrimSpace(string(body)))
	}

	var body ordersPage
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("%w: decode response: %v", internalErrors.ErrFetch, err)
	}

	if body.Orders == nil {
		return nil, "", fmt.Errorf("%w: response has no orders list", internalErrors.ErrFetch)
	}

	return *body.Orders, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target of a Link header.
func nextPageURL(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for _, param := range segments[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
			}
		}
	}

	return ""
}
