package snow

import (
	"fmt"

	"github.com/chrissnell/seasonswap/internal/swap"
)

// SwapResult is the outcome of an eligibility check. Only Success applies snow; SeasonFail and
// RefFail on a previously snowed object mean its original shader should come back.
type SwapResult uint8

const (
	SeasonFail SwapResult = iota
	RefFail
	BaseFail
	Success
)

func (r SwapResult) String() string {
	switch r {
	case SeasonFail:
		return "season-fail"
	case RefFail:
		return "ref-fail"
	case BaseFail:
		return "base-fail"
	case Success:
		return "success"
	}
	return fmt.Sprintf("result(%d)", uint8(r))
}

// FormKind is the base form type of a placed object.
type FormKind uint8

const (
	KindOther FormKind = iota
	KindStatic
	KindMovableStatic
	KindContainer
)

// Form is the base object a reference places in the world.
type Form interface {
	ID() swap.ResourceID
	Kind() FormKind
	Model() string
	IsMarker() bool
}

// Static is a static base form with the material data snow needs.
type Static interface {
	Form
	// Material returns the directional material and whether that material already is a snow
	// shader or an ice material.
	Material() (id swap.ResourceID, snowOrIce bool)
	// IsSnowObject reports the form's "considered snow" flag.
	IsSnowObject() bool
	IsSkyObject() bool
	HasTreeLOD() bool
}

// Reference is a placed instance of a Form.
type Reference interface {
	IsDeleted() bool
	IsInWater() bool
	// Base returns the form the reference currently points to.
	Base() Form
}

// Gate decides whether an object may receive the snow shader.
type Gate struct {
	// Permit reports whether the current season and settings allow the snow shader.
	Permit    func() bool
	Blacklist *Blacklist
}

// CheckStatic evaluates a static together with the reference placing it.
func (g *Gate) CheckStatic(s Static, ref Reference) SwapResult {
	if g.Permit == nil || !g.Permit() {
		return SeasonFail
	}
	if ref == nil || ref.IsDeleted() || ref.IsInWater() {
		return RefFail
	}
	if base := ref.Base(); base == nil || base.ID() != s.ID() {
		return BaseFail
	}
	if !g.baseAllowed(s) {
		return BaseFail
	}
	if _, snowOrIce := s.Material(); snowOrIce {
		return BaseFail
	}
	if s.IsSnowObject() || s.IsSkyObject() || s.HasTreeLOD() {
		return BaseFail
	}
	return Success
}

// CheckOther evaluates movable statics and containers, which carry no material of their own.
func (g *Gate) CheckOther(ref Reference, base Form) SwapResult {
	if g.Permit == nil || !g.Permit() {
		return SeasonFail
	}
	if ref == nil || ref.IsDeleted() || ref.IsInWater() {
		return RefFail
	}
	if b := ref.Base(); base == nil || b == nil || b.ID() != base.ID() {
		return BaseFail
	}
	if k := base.Kind(); k != KindMovableStatic && k != KindContainer {
		return BaseFail
	}
	if !g.baseAllowed(base) {
		return BaseFail
	}
	return Success
}

func (g *Gate) baseAllowed(f Form) bool {
	if f.IsMarker() {
		return false
	}
	if g.Blacklist != nil && g.Blacklist.Contains(f.ID(), f.Model()) {
		return false
	}
	return true
}
