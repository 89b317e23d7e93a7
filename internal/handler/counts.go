package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"orderdash/internal/service"
)

type orderCounts struct {
	TotalOrders      int `json:"totalOrders"`
	TodaysOrders     int `json:"todaysOrders"`
	YesterdaysOrders int `json:"yesterdaysOrders"`
	ThisMonthOrders  int `json:"thisMonthOrders"`
	ThisYearOrders   int `json:"thisYearOrders"`
}

// OrderCountsHandler answers quick-stat counts for a site: today, yesterday,
// month-to-date and year-to-date. The four fetches run sequentially; a
// failed fetch contributes zero, and a missing token zeroes everything.
func OrderCountsHandler(tokens *service.TokenClient, orders *service.OrderClient, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteUID := r.URL.Query().Get("site")

		token, err := tokens.FetchToken(r.Context())
		if err != nil {
			logger.Warn("answering zero counts: token unavailable", zap.String("site", siteUID), zap.Error(err))
			writeJSON(w, orderCounts{})
			return
		}

		// Window starts keep today's time of day; only the calendar date moves.
		today := timeNow()
		yesterday := today.AddDate(0, 0, -1)
		monthStart := today.AddDate(0, 0, 1-today.Day())
		hour, min, sec := today.Clock()
		yearStart := time.Date(today.Year(), time.January, 1, hour, min, sec, 0, today.Location())

		count := func(start, end time.Time) int {
			list, err := orders.FetchOrders(r.Context(), token, siteUID, &start, &end)
			if err != nil {
				logger.Warn("counting fetch failed", zap.String("site", siteUID), zap.Error(err))
				return 0
			}
			return len(list)
		}

		counts := orderCounts{
			TodaysOrders:     count(today, today),
			YesterdaysOrders: count(yesterday, yesterday),
			ThisMonthOrders:  count(monthStart, today),
			ThisYearOrders:   count(yearStart, today),
		}
		counts.TotalOrders = counts.TodaysOrders + counts.YesterdaysOrders +
			counts.ThisMonthOrders + counts.ThisYearOrders

		writeJSON(w, counts)
	}
}
