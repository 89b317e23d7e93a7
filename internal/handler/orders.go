package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"orderdash/internal/model"
	"orderdash/internal/service"
)

// timeNow is swapped in tests for deterministic date ranges.
var timeNow = time.Now

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// FetchOrdersHandler obtains a token, fetches the site's orders for the
// requested range and answers with a JSON array. Every internal failure
// collapses to an empty array with status 200; logs carry the cause.
func FetchOrdersHandler(tokens *service.TokenClient, orders *service.OrderClient, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		siteUID := r.FormValue("site_uid")

		var start, end *time.Time
		if v := r.FormValue("start_date"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "invalid start_date", http.StatusBadRequest)
				return
			}
			start = &t
		}
		if v := r.FormValue("end_date"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "invalid end_date", http.StatusBadRequest)
				return
			}
			end = &t
		}

		token, err := tokens.FetchToken(r.Context())
		if err != nil {
			logger.Warn("answering empty: token unavailable", zap.String("site", siteUID), zap.Error(err))
			writeJSON(w, []model.Order{})
			return
		}

		list, err := orders.FetchOrders(r.Context(), token, siteUID, start, end)
		if err != nil {
			logger.Warn("answering empty: fetch failed", zap.String("site", siteUID), zap.Error(err))
			writeJSON(w, []model.Order{})
			return
		}
		if list == nil {
			list = []model.Order{}
		}

		writeJSON(w, list)
	}
}
