package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderdash/internal/feed"
	"orderdash/internal/metrics"
	"orderdash/internal/model"
)

const upstreamTimeLayout = "2006-01-02T15:04:05"

// OrderClient fetches order feeds for a site over a date range. The feed URL
// is a template with {site_uid}, {start_date} and {end_date} placeholders,
// substituted verbatim.
type OrderClient struct {
	feedURL string
	client  *http.Client
	logger  *zap.Logger

	now func() time.Time // swapped in tests
}

func NewOrderClient(feedURL string, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		now:     time.Now,
	}
}

// FetchOrders issues one authenticated GET and hands the body to the feed
// parser. A nil bound on either side selects the default range, Jan 1 of the
// previous year through now. When both bounds are given the end date is
// shifted one day forward so the supplied day stays inclusive.
func (c *OrderClient) FetchOrders(ctx context.Context, token, siteUID string, start, end *time.Time) ([]model.Order, error) {
	var startStr, endStr string
	if start == nil || end == nil {
		now := c.now()
		startStr = time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location()).Format(upstreamTimeLayout)
		endStr = now.Format(upstreamTimeLayout)
	} else {
		startStr = start.Format(upstreamTimeLayout)
		endStr = end.AddDate(0, 0, 1).Format(upstreamTimeLayout)
	}

	url := strings.NewReplacer(
		"{site_uid}", siteUID,
		"{start_date}", startStr,
		"{end_date}", endStr,
	).Replace(c.feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create orders request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("orders", "error").Inc()
		c.logger.Error("orders request failed", zap.String("site", siteUID), zap.Error(err))
		return nil, fmt.Errorf("do orders request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("orders", "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("orders endpoint returned non-200",
			zap.String("site", siteUID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("unexpected orders status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("orders", "error").Inc()
		return nil, fmt.Errorf("read orders response: %w", err)
	}

	orders, err := feed.Parse(body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("orders", "error").Inc()
		c.logger.Error("orders feed parse failed", zap.String("site", siteUID), zap.Error(err))
		return nil, fmt.Errorf("parse orders feed: %w", err)
	}

	metrics.UpstreamRequests.WithLabelValues("orders", "ok").Inc()
	metrics.OrdersParsed.Add(float64(len(orders)))
	return orders, nil
}
