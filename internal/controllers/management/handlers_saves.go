package management

import (
	"errors"
	"net/http"

	"github.com/chrissnell/seasonswap/internal/seasons"
	"github.com/gorilla/mux"
)

// saveError maps a save operation error to a response
func (h *Handlers) saveError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, seasons.ErrNoStore) {
		h.sendError(w, r, http.StatusServiceUnavailable, "Season records are disabled", err)
		return
	}
	h.sendError(w, r, http.StatusInternalServerError, "Season record operation failed", err)
}

// SaveSeason records the season state for the named save
func (h *Handlers) SaveSeason(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	saved, err := h.manager.SaveSeason(r.Context(), name)
	if err != nil {
		h.saveError(w, r, err)
		return
	}
	h.send(w, r, map[string]any{
		"save":  name,
		"saved": saved,
	})
}

// LoadSeason restores the season state recorded for the named save
func (h *Handlers) LoadSeason(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rec, err := h.manager.LoadSeason(r.Context(), name)
	if err != nil {
		h.saveError(w, r, err)
		return
	}
	h.send(w, r, map[string]any{
		"save":     name,
		"season":   seasonName(rec.Current),
		"override": seasonName(rec.Override),
	})
}

// ClearSeason forgets the record of a deleted save
func (h *Handlers) ClearSeason(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.manager.ClearSeason(r.Context(), name); err != nil {
		h.saveError(w, r, err)
		return
	}
	h.send(w, r, map[string]any{
		"save":    name,
		"cleared": true,
	})
}

// CleanupSaves removes the records of saves that no longer exist
func (h *Handlers) CleanupSaves(w http.ResponseWriter, r *http.Request) {
	removed, err := h.manager.CleanupSaves(r.Context())
	if err != nil {
		h.saveError(w, r, err)
		return
	}
	if removed == nil {
		removed = []string{}
	}
	h.send(w, r, map[string]any{
		"removed": removed,
	})
}
