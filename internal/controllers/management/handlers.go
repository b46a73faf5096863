package management

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/seasons"
)

// Handlers contains the HTTP handlers for the management API
type Handlers struct {
	controller *Controller
	manager    *seasons.Manager
}

// NewHandlers creates a new Handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		manager:    ctrl.manager,
	}
}

// send writes a 200 response in the requested encoding
func (h *Handlers) send(w http.ResponseWriter, r *http.Request, data any) {
	if err := h.controller.formatter.WriteResponse(w, r, data); err != nil {
		h.controller.logger.Errorf("writing response for %s: %v", r.URL.Path, err)
	}
}

// sendError sends an error response
func (h *Handlers) sendError(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	if werr := h.controller.formatter.WriteError(w, r, statusCode, message, err); werr != nil {
		h.controller.logger.Errorf("writing error response for %s: %v", r.URL.Path, werr)
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// seasonName renders a season for responses; None becomes the empty string.
func seasonName(s season.Season) string {
	if !s.Valid() {
		return ""
	}
	return s.String()
}

// transitionResponse is returned by every call that may change the season
type transitionResponse struct {
	Changed bool   `json:"changed"`
	Season  string `json:"season"`
	Purges  int    `json:"pending_purges,omitempty"`
}

func (h *Handlers) transition(changed bool) transitionResponse {
	resp := transitionResponse{
		Changed: changed,
		Season:  seasonName(h.manager.Snapshot().Current),
	}
	if p := h.controller.purges; p != nil {
		resp.Purges = int(p.pending.Load())
	}
	return resp
}
