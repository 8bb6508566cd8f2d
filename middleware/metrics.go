package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go-foodorder/utils"

	"github.com/gorilla/mux"
)

// Metrics records request count and latency per route template, so /api/orders/{id}
// is one series instead of one per order
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		status := strconv.Itoa(rw.status)
		utils.RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		utils.RequestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}
