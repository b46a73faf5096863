package management

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chrissnell/seasonswap/internal/lodpath"
	"github.com/chrissnell/seasonswap/internal/season"
	"github.com/chrissnell/seasonswap/internal/swap"
	"github.com/gorilla/mux"
)

// GetLODPath builds a LOD file name for the current season.
//
//	GET /api/lod/terrain_mesh?worldspace=Tamriel&x=4&y=-8&scale=16
//	GET /api/lod/tree_type_list?worldspace=Tamriel
func (h *Handlers) GetLODPath(w http.ResponseWriter, r *http.Request) {
	cat, err := lodpath.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "Unknown LOD category", err)
		return
	}

	args, err := lodArgs(cat, r)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid LOD arguments", err)
		return
	}

	p, err := h.manager.ResolvePath(cat, args...)
	if errors.Is(err, lodpath.ErrPathTooLong) {
		h.sendError(w, r, http.StatusUnprocessableEntity, "LOD name too long", err)
		return
	}
	if err != nil {
		h.sendError(w, r, http.StatusInternalServerError, "Failed to build LOD name", err)
		return
	}

	h.send(w, r, map[string]any{
		"category": cat.String(),
		"lod_type": cat.LODType().String(),
		"path":     p,
	})
}

// lodArgs converts the query into the positional arguments cat expects
func lodArgs(cat lodpath.Category, r *http.Request) ([]any, error) {
	q := r.URL.Query()
	ws := q.Get("worldspace")
	if ws == "" {
		return nil, fmt.Errorf("worldspace is required")
	}
	if cat.Arity() == lodpath.WorldArity {
		return []any{ws}, nil
	}

	x, err := strconv.ParseInt(q.Get("x"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseInt(q.Get("y"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	scale, err := strconv.ParseUint(q.Get("scale"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	return []any{ws, int16(x), int16(y), uint32(scale)}, nil
}

type swapResponse struct {
	Kind        string          `json:"kind"`
	Season      string          `json:"season"`
	Original    swap.ResourceID `json:"original"`
	Replacement swap.ResourceID `json:"replacement,omitempty"`
	Found       bool            `json:"found"`
}

// GetSwap returns the replacement of a resource. Without ?season= the current season and its
// switches apply; with it the season's table is read directly.
func (h *Handlers) GetSwap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := swap.ParseKind(vars["kind"])
	if err != nil {
		h.sendError(w, r, http.StatusNotFound, "Unknown swap kind", err)
		return
	}
	id, err := swap.ParseResourceID(vars["id"])
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid resource id", err)
		return
	}

	resp := swapResponse{Kind: kind.String(), Original: id}

	if v := r.URL.Query().Get("season"); v != "" {
		s, err := season.ParseSeason(v)
		if err != nil || !s.Valid() {
			h.sendError(w, r, http.StatusBadRequest, "Invalid season", err)
			return
		}
		resp.Season = s.String()
		resp.Replacement, resp.Found = h.manager.Lookup(s, kind, id)
		h.send(w, r, resp)
		return
	}

	resp.Season = seasonName(h.manager.CurrentSeason())
	switch kind {
	case swap.Forms:
		resp.Replacement, resp.Found = h.manager.SwapForm(id)
	case swap.LandTextures:
		resp.Replacement, resp.Found = h.manager.SwapLandTexture(id)
	case swap.TextureSets:
		resp.Replacement, resp.Found = h.manager.SwapLandTextureFromTextureSet(id)
	}
	h.send(w, r, resp)
}

// GetSwapCounts returns the table sizes of every season
func (h *Handlers) GetSwapCounts(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]map[string]int, len(season.All))
	for _, s := range season.All {
		counts[s.String()] = h.manager.SwapCounts(s)
	}
	h.send(w, r, map[string]any{
		"seasons":   counts,
		"generated": len(h.manager.MainSwaps()),
	})
}
