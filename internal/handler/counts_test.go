package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdash/internal/service"
)

func getCounts(t *testing.T, h http.HandlerFunc) (orderCounts, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/fetch_order_counts?site=siteA", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	var counts orderCounts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	return counts, rec
}

func TestOrderCountsHandler(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }
	defer func() { timeNow = restore }()

	auth := newAuthServer(t, true)
	defer auth.Close()
	var calls int
	feed := newFeedServer(t, true, &calls)
	defer feed.Close()

	h := OrderCountsHandler(
		service.NewTokenClient(auth.URL, zap.NewNop()),
		service.NewOrderClient(feedTemplate(feed.URL), zap.NewNop()),
		zap.NewNop())

	counts, rec := getCounts(t, h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, calls, "expected one fetch per window")
	assert.Equal(t, orderCounts{
		TotalOrders:      4,
		TodaysOrders:     1,
		YesterdaysOrders: 1,
		ThisMonthOrders:  1,
		ThisYearOrders:   1,
	}, counts)
}

func TestOrderCountsHandlerWindows(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time { return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC) }
	defer func() { timeNow = restore }()

	auth := newAuthServer(t, true)
	defer auth.Close()

	var windows [][2]string
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		windows = append(windows, [2]string{q.Get("start"), q.Get("end")})
		io.WriteString(w, testFeed)
	}))
	defer feed.Close()

	h := OrderCountsHandler(
		service.NewTokenClient(auth.URL, zap.NewNop()),
		service.NewOrderClient(feedTemplate(feed.URL), zap.NewNop()),
		zap.NewNop())

	_, rec := getCounts(t, h)
	require.Equal(t, http.StatusOK, rec.Code)

	// Each window start keeps the current time of day, and each end is the
	// supplied day shifted one forward for inclusivity.
	assert.Equal(t, [][2]string{
		{"2025-06-15T09:30:00", "2025-06-16T09:30:00"}, // today
		{"2025-06-14T09:30:00", "2025-06-15T09:30:00"}, // yesterday
		{"2025-06-01T09:30:00", "2025-06-16T09:30:00"}, // month to date
		{"2025-01-01T09:30:00", "2025-06-16T09:30:00"}, // year to date
	}, windows)
}

func TestOrderCountsHandlerAllFetchesFail(t *testing.T) {
	auth := newAuthServer(t, true)
	defer auth.Close()
	var calls int
	feed := newFeedServer(t, false, &calls)
	defer feed.Close()

	h := OrderCountsHandler(
		service.NewTokenClient(auth.URL, zap.NewNop()),
		service.NewOrderClient(feedTemplate(feed.URL), zap.NewNop()),
		zap.NewNop())

	counts, rec := getCounts(t, h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, calls)
	assert.Equal(t, orderCounts{}, counts)
}

func TestOrderCountsHandlerNoToken(t *testing.T) {
	auth := newAuthServer(t, false)
	defer auth.Close()
	var calls int
	feed := newFeedServer(t, true, &calls)
	defer feed.Close()

	h := OrderCountsHandler(
		service.NewTokenClient(auth.URL, zap.NewNop()),
		service.NewOrderClient(feedTemplate(feed.URL), zap.NewNop()),
		zap.NewNop())

	counts, rec := getCounts(t, h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, calls, "no fetches without a token")
	assert.Equal(t, orderCounts{}, counts)
}
