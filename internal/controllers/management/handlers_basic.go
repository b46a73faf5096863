package management

import (
	"net/http"
	"time"

	"github.com/chrissnell/seasonswap/internal/constants"
)

// GetStatus returns the status of the management API
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"name":      constants.Name,
		"version":   constants.Version,
		"session":   h.manager.ID(),
		"uptime_s":  int64(time.Since(h.controller.started).Seconds()),
		"store":     "disabled",
	}

	if st := h.controller.store; st != nil {
		status["store"] = "healthy"
		if err := st.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
		}
	}

	h.send(w, r, status)
}
