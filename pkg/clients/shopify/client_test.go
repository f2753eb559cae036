package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/config"
	internalErrors "github.com/tumbleweedd/shopify_klaviyo_sync/internal/lib/errors"
	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/metrics"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

var (
	from = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC)
)

func newTestClient(baseURL string, cfg config.ShopifyConfig) *Client {
	cfg.BaseURL = baseURL
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-10"
	}
	if cfg.PageLimit == 0 {
		cfg.PageLimit = 250
	}
	cfg.Timeout = 5 * time.Second

	return New(logger.NewDiscardLogger(), metrics.NewRegistry(), cfg)
}

func TestFetchOrdersPaginates(t *testing.T) {
	var serverURL string

	router := chi.NewRouter()
	router.Get("/admin/api/{version}/orders.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2023-10", chi.URLParam(r, "version"))
		assert.Equal(t, "shpat_token", r.Header.Get(accessTokenHeader))

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("page_info") {
		case "":
			assert.Equal(t, "2016-01-01T00:00:00Z", r.URL.Query().Get("created_at_min"))
			assert.Equal(t, "2016-12-31T23:59:59Z", r.URL.Query().Get("created_at_max"))
			assert.Equal(t, "any", r.URL.Query().Get("status"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))

			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2023-10/orders.json?limit=2&page_info=p2>; rel="next"`, serverURL))
			_, _ = w.Write([]byte(`{"orders":[{"id":1,"financial_status":"paid"},{"id":2,"financial_status":"pending"}]}`))
		case "p2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2023-10/orders.json?limit=2>; rel="previous"`, serverURL))
			_, _ = w.Write([]byte(`{"orders":[{"id":3,"financial_status":"refunded","total_price":"12.50"}]}`))
		default:
			http.Error(w, "unexpected page", http.StatusBadRequest)
		}
	})

	server := httptest.NewServer(router)
	defer server.Close()
	serverURL = server.URL

	client := newTestClient(server.URL, config.ShopifyConfig{AccessToken: "shpat_token", PageLimit: 2, Status: "any"})

	orders, err := client.FetchOrders(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})
	require.Equal(t, "12.5", orders[2].TotalPrice.String())
}

func TestFetchOrdersBasicAuth(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/admin/api/{version}/orders.json", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		assert.Empty(t, r.URL.Query().Get("status"))

		_, _ = w.Write([]byte(`{"orders":[]}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	client := newTestClient(server.URL, config.ShopifyConfig{APIKey: "key", Password: "secret"})

	orders, err := client.FetchOrders(context.Background(), from, to)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestFetchOrdersErrors(t *testing.T) {
	tCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"errors":"[API] Invalid API key"}`, http.StatusUnauthorized)
			},
		},
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"orders":[`))
			},
		},
		{
			name: "no_orders_key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
			},
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/admin/api/{version}/orders.json", tCase.handler)

			server := httptest.NewServer(router)
			defer server.Close()

			client := newTestClient(server.URL, config.ShopifyConfig{AccessToken: "t"})

			orders, err := client.FetchOrders(context.Background(), from, to)
			require.ErrorIs(t, err, internalErrors.ErrFetch)
			require.Nil(t, orders)
		})
	}
}

func TestFetchOrdersUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := newTestClient(server.URL, config.ShopifyConfig{AccessToken: "t"})

	_, err := client.FetchOrders(context.Background(), from, to)
	require.ErrorIs(t, err, internalErrors.ErrFetch)
}

func TestNextPageURL(t *testing.T) {
	tCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "next_only", header: `<https://s.myshopify.com/a?page_info=x>; rel="next"`, want: "https://s.myshopify.com/a?page_info=x"},
		{name: "previous_only", header: `<https://s.myshopify.com/a?page_info=x>; rel="previous"`, want: ""},
		{
			name:   "previous_and_next",
			header: `<https://s.myshopify.com/a?page_info=p>; rel="previous", <https://s.myshopify.com/a?page_info=n>; rel="next"`,
			want:   "https://s.myshopify.com/a?page_info=n",
		},
		{name: "garbage", header: `nonsense; rel="next"`, want: ""},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			require.Equal(t, tCase.want, nextPageURL(tCase.header))
		})
	}
}
