package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"orderdash/internal/model"
)

type exportRequest struct {
	Orders  []model.Order `json:"orders"`
	SiteUID string        `json:"site_uid"`
}

// ExportOrdersHandler converts a client-supplied record array to a CSV
// attachment named <site_uid>-orders.csv. It performs no fetching and trusts
// the payload verbatim.
func ExportOrdersHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", req.SiteUID+"-orders.csv"))

		cw := csv.NewWriter(w)
		_ = cw.Write(model.CSVHeader())
		for _, o := range req.Orders {
			_ = cw.Write(o.CSVRow())
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logger.Error("csv write failed", zap.String("site", req.SiteUID), zap.Error(err))
		}
	}
}
