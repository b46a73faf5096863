package management

import (
	"fmt"
	"net/http"

	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/seasons"
)

type transitionView struct {
	Previous       string `json:"previous"`
	Current        string `json:"current"`
	OverrideDriven bool   `json:"override_driven"`
}

type seasonResponse struct {
	Session        string           `json:"session"`
	Type           string           `json:"type"`
	Season         string           `json:"season"`
	Current        string           `json:"current"`
	Last           string           `json:"last"`
	Override       string           `json:"override,omitempty"`
	Exterior       bool             `json:"exterior"`
	LoadedFromSave bool             `json:"loaded_from_save"`
	Settings       seasons.Settings `json:"settings"`
	LastTransition *transitionView  `json:"last_transition,omitempty"`
}

// GetSeason returns the season state. season is what gameplay sees right now and is empty in
// interiors; current is the last computed exterior season.
func (h *Handlers) GetSeason(w http.ResponseWriter, r *http.Request) {
	visible := h.manager.CurrentSeason()
	st := h.manager.Snapshot()

	resp := seasonResponse{
		Session:        h.manager.ID(),
		Type:           st.Type.String(),
		Season:         seasonName(visible),
		Current:        seasonName(st.Current),
		Last:           seasonName(st.Last),
		Override:       seasonName(st.Override),
		Exterior:       st.Exterior,
		LoadedFromSave: st.LoadedFromSave,
		Settings:       h.manager.Settings(visible),
	}
	if t, ok := h.manager.LastTransition(); ok {
		resp.LastTransition = &transitionView{
			Previous:       seasonName(t.Previous),
			Current:        seasonName(t.Current),
			OverrideDriven: t.OverrideDriven,
		}
	}

	h.send(w, r, resp)
}

// UpdateSeason recomputes the season and reports whether it changed
func (h *Handlers) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.transition(h.manager.Update()))
}

// SetOverride pins the season, e.g. {"season": "winter"}
func (h *Handlers) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season string `json:"season"`
	}
	if err := decode(r, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}

	s, err := season.ParseSeason(req.Season)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid season", err)
		return
	}
	if !s.Valid() {
		h.sendError(w, r, http.StatusBadRequest, "Invalid season", fmt.Errorf("use DELETE to clear the override"))
		return
	}

	h.send(w, r, h.transition(h.manager.SetOverride(s)))
}

// ClearOverride returns to the configured season type
func (h *Handlers) ClearOverride(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.transition(h.manager.ClearOverride()))
}

// SetExterior records whether the observer is outdoors, e.g. {"exterior": true}
func (h *Handlers) SetExterior(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Exterior *bool `json:"exterior"`
	}
	if err := decode(r, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if req.Exterior == nil {
		h.sendError(w, r, http.StatusBadRequest, "exterior is required", nil)
		return
	}

	h.manager.SetExterior(*req.Exterior)
	h.send(w, r, map[string]any{
		"exterior": *req.Exterior,
		"season":   seasonName(h.manager.CurrentSeason()),
	})
}

// SetCalendar records the host's calendar and recomputes the season. The body carries either
// {"month": "Frostfall"} or {"days_passed": 45.5}; days_passed needs settings.start_day.
func (h *Handlers) SetCalendar(w http.ResponseWriter, r *http.Request) {
	clock := h.controller.clock
	if clock == nil {
		h.sendError(w, r, http.StatusServiceUnavailable, "The calendar is not host driven", nil)
		return
	}

	var req struct {
		Month      string   `json:"month"`
		DaysPassed *float64 `json:"days_passed"`
	}
	if err := decode(r, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if req.Month == "" && req.DaysPassed == nil {
		h.sendError(w, r, http.StatusBadRequest, "month or days_passed is required", nil)
		return
	}

	if req.Month != "" {
		m, err := season.ParseMonth(req.Month)
		if err != nil {
			h.sendError(w, r, http.StatusBadRequest, "Invalid month", err)
			return
		}
		clock.SetMonth(m)
	}
	if req.DaysPassed != nil && !clock.SetDaysPassed(*req.DaysPassed) {
		h.sendError(w, r, http.StatusBadRequest, "days_passed rejected",
			fmt.Errorf("value %v is invalid or no start day is configured", *req.DaysPassed))
		return
	}

	h.send(w, r, h.transition(h.manager.Update()))
}

// Activate forwards an activation event, e.g. {"by_player": true, "teleport": true}
func (h *Handlers) Activate(w http.ResponseWriter, r *http.Request) {
	var ev seasons.ActivateEvent
	if err := decode(r, &ev); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	h.send(w, r, h.transition(h.manager.OnActivate(ev)))
}

// TakePurge hands pending cell purges to the host and clears them
func (h *Handlers) TakePurge(w http.ResponseWriter, r *http.Request) {
	p := h.controller.purges
	if p == nil {
		h.sendError(w, r, http.StatusServiceUnavailable, "Cell purges are not relayed", nil)
		return
	}
	n := p.Take()
	h.send(w, r, map[string]any{
		"purge":    n > 0,
		"requests": n,
	})
}
