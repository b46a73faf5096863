// Package snow decides whether and how objects receive the snow shader: which objects are
// eligible, which shader strategy suits an object's geometry, and what to restore when snow no
// longer applies.
package snow

import "fmt"

// Type is the shader strategy chosen for an object.
type Type uint8

const (
	// SinglePass projects snow in the object's own pass. Safe for any geometry.
	SinglePass Type = iota
	// MultiPass renders a separate snow pass. Requires simple, opaque, non-skinned geometry.
	MultiPass
)

func (t Type) String() string {
	switch t {
	case SinglePass:
		return "single-pass"
	case MultiPass:
		return "multi-pass"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Geometry is one shape of an object's render graph.
type Geometry interface {
	// HasVertexData is false for shapes that declare no vertices.
	HasVertexData() bool
	// LightingShader reports whether the shape uses a lighting shader property and whether
	// that property is skinned.
	LightingShader() (present, skinned bool)
	// AlphaBlendOrTest reports an alpha property with blending or testing enabled.
	AlphaBlendOrTest() bool
}

// SceneGraph walks the geometry nodes of a loaded object. visit returns false to stop the walk.
type SceneGraph interface {
	VisitGeometries(visit func(Geometry) bool)
}

// Classify inspects an object's geometry. MultiPass is only chosen when there is at least one
// shape and every shape has vertices, a non-skinned lighting shader and no alpha. The walk stops
// at the first shape that disqualifies the object.
func Classify(node SceneGraph) Type {
	if node == nil {
		return SinglePass
	}

	hasShape := false
	qualifies := true
	node.VisitGeometries(func(g Geometry) bool {
		hasShape = true

		if !g.HasVertexData() {
			qualifies = false
			return false
		}
		if present, skinned := g.LightingShader(); !present || skinned {
			qualifies = false
			return false
		}
		if g.AlphaBlendOrTest() {
			qualifies = false
			return false
		}
		return true
	})

	if hasShape && qualifies {
		return MultiPass
	}
	return SinglePass
}
