package management

import (
	"fmt"
	"net/http"

	"github.com/chrissnell/seasonswap/internal/snow"
	"github.com/chrissnell/seasonswap/internal/swap"
	"github.com/gorilla/mux"
)

// GetSnowInfo returns the classification recorded for an object
func (h *Handlers) GetSnowInfo(w http.ResponseWriter, r *http.Request) {
	id, err := swap.ParseResourceID(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid resource id", err)
		return
	}

	info, ok := h.manager.SnowInfo(id)
	if !ok {
		h.sendError(w, r, http.StatusNotFound, "Object has not been classified", nil)
		return
	}
	h.send(w, r, map[string]any{
		"object_id":       info.ObjectID,
		"original_shader": info.OriginalShader,
		"type":            info.Type.String(),
	})
}

// formData describes a base form as the host sees it
type formData struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Model     string `json:"model"`
	Marker    bool   `json:"marker"`
	Material  string `json:"material"`
	SnowOrIce bool   `json:"snow_or_ice"`
	Snow      bool   `json:"snow_object"`
	Sky       bool   `json:"sky_object"`
	TreeLOD   bool   `json:"tree_lod"`
}

type refData struct {
	Deleted bool   `json:"deleted"`
	InWater bool   `json:"in_water"`
	Base    string `json:"base"`
}

type geometryData struct {
	VertexData bool `json:"vertex_data"`
	Lighting   bool `json:"lighting"`
	Skinned    bool `json:"skinned"`
	Alpha      bool `json:"alpha"`
}

type decideRequest struct {
	Form formData `json:"form"`
	Ref  *refData `json:"ref"`
	// Geometry is only needed the first time an object is seen.
	Geometry []geometryData `json:"geometry"`
}

type decideResponse struct {
	Action string          `json:"action"`
	Result string          `json:"result"`
	Type   string          `json:"type"`
	Shader swap.ResourceID `json:"shader,omitempty"`
}

// DecideSnow decides the snow shader of a placed object. Statics go through the full gate with
// classification; movable statics and containers only get the single-pass shader.
func (h *Handlers) DecideSnow(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}

	form, err := req.Form.parse()
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, "Invalid form", err)
		return
	}

	// A missing reference is passed on as nil so the gate reports it.
	var ref snow.Reference
	if req.Ref != nil {
		rf, err := req.Ref.parse(form)
		if err != nil {
			h.sendError(w, r, http.StatusBadRequest, "Invalid reference", err)
			return
		}
		ref = rf
	}

	var d snow.Decision
	if form.kind == snow.KindStatic {
		var load func() snow.SceneGraph
		if req.Geometry != nil {
			load = func() snow.SceneGraph { return sceneData(req.Geometry) }
		}
		d = h.manager.ShouldSwap(form, ref, load)
	} else {
		d = h.manager.ShouldSwapOther(ref, form)
	}

	h.send(w, r, decideResponse{
		Action: d.Action.String(),
		Result: d.Result.String(),
		Type:   d.Type.String(),
		Shader: d.Shader,
	})
}

// hostForm implements snow.Static from request data
type hostForm struct {
	id        swap.ResourceID
	kind      snow.FormKind
	model     string
	marker    bool
	material  swap.ResourceID
	snowOrIce bool
	snow      bool
	sky       bool
	treeLOD   bool
}

func (f *hostForm) ID() swap.ResourceID { return f.id }
func (f *hostForm) Kind() snow.FormKind { return f.kind }
func (f *hostForm) Model() string       { return f.model }
func (f *hostForm) IsMarker() bool      { return f.marker }
func (f *hostForm) IsSnowObject() bool  { return f.snow }
func (f *hostForm) IsSkyObject() bool   { return f.sky }
func (f *hostForm) HasTreeLOD() bool    { return f.treeLOD }
func (f *hostForm) Material() (swap.ResourceID, bool) {
	return f.material, f.snowOrIce
}

var formKinds = map[string]snow.FormKind{
	"static":         snow.KindStatic,
	"movable_static": snow.KindMovableStatic,
	"container":      snow.KindContainer,
	"other":          snow.KindOther,
}

func (d formData) parse() (*hostForm, error) {
	id, err := swap.ParseResourceID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	kind, ok := formKinds[d.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown form kind %q", d.Kind)
	}
	f := &hostForm{
		id:        id,
		kind:      kind,
		model:     d.Model,
		marker:    d.Marker,
		snowOrIce: d.SnowOrIce,
		snow:      d.Snow,
		sky:       d.Sky,
		treeLOD:   d.TreeLOD,
	}
	if d.Material != "" {
		if f.material, err = swap.ParseResourceID(d.Material); err != nil {
			return nil, fmt.Errorf("material: %w", err)
		}
	}
	return f, nil
}

// hostRef implements snow.Reference from request data
type hostRef struct {
	deleted bool
	inWater bool
	base    snow.Form
}

func (r *hostRef) IsDeleted() bool { return r.deleted }
func (r *hostRef) IsInWater() bool { return r.inWater }
func (r *hostRef) Base() snow.Form { return r.base }

// parse resolves the reference's base. An empty or matching base id points at form; any other
// id stands for a different form of unknown kind.
func (d refData) parse(form *hostForm) (*hostRef, error) {
	ref := &hostRef{deleted: d.Deleted, inWater: d.InWater, base: form}
	if d.Base == "" {
		return ref, nil
	}
	id, err := swap.ParseResourceID(d.Base)
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	if id != form.id {
		ref.base = &hostForm{id: id, kind: snow.KindOther}
	}
	return ref, nil
}

type geometryShape geometryData

func (g geometryShape) HasVertexData() bool          { return g.VertexData }
func (g geometryShape) LightingShader() (bool, bool) { return g.Lighting, g.Skinned }
func (g geometryShape) AlphaBlendOrTest() bool       { return g.Alpha }

// sceneData implements snow.SceneGraph over the shapes the host listed
type sceneData []geometryData

func (s sceneData) VisitGeometries(visit func(snow.Geometry) bool) {
	for _, g := range s {
		if !visit(geometryShape(g)) {
			return
		}
	}
}
