package web

import (
	"net/http"
	"strconv"
	"time"

	"clubhouse/internal/adapters/http/perf"
)

// handleRuntimeStats returns aggregated request and query timings from
// the in-memory collector. Admin only; ?minutes= narrows the window
// (default 60).
func handleRuntimeStats(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}

	minutes := 60
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, "minutes must be a positive integer")
			return
		}
		minutes = n
	}

	snap := perfCollector.Snapshot(timeNow().Add(-time.Duration(minutes)*time.Minute), 10)
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":        true,
		"windowMinutes":  minutes,
		"totalRecorded":  snap.TotalRecorded,
		"requestP50Ms":   snap.RequestP50Ms,
		"requestP95Ms":   snap.RequestP95Ms,
		"requestP99Ms":   snap.RequestP99Ms,
		"slowestRoutes":  opStatsJSON(snap.SlowestRoutes),
		"slowestQueries": opStatsJSON(snap.SlowestQueries),
	})
}

func opStatsJSON(stats []perf.OpStat) []map[string]any {
	out := make([]map[string]any, 0, len(stats))
	for _, s := range stats {
		out = append(out, map[string]any{
			"op":    s.Op,
			"avgMs": s.AvgMs,
			"maxMs": s.MaxMs,
			"count": s.Count,
		})
	}
	return out
}
