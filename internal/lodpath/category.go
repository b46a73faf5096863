// Package lodpath builds the file names of distant-LOD resources, choosing a seasonal variant of
// each name when the current season allows it.
package lodpath

import (
	"fmt"
	"strings"
)

// LODType groups categories that are switched on and off together per season.
type LODType int

const (
	Terrain LODType = iota
	Object
	Tree

	lodTypeCount
)

var lodTypeNames = [lodTypeCount]string{"terrain", "object", "tree"}

func (t LODType) String() string {
	if t >= 0 && t < lodTypeCount {
		return lodTypeNames[t]
	}
	return fmt.Sprintf("lodtype(%d)", int(t))
}

// ParseLODType accepts "terrain", "object" or "tree".
func ParseLODType(v string) (LODType, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range lodTypeNames {
		if v == n {
			return LODType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown LOD type %q", v)
}

// Category is one of the resource names the host builds for LOD.
type Category int

const (
	TerrainMesh Category = iota
	TerrainDiffuse
	TerrainNormal
	ObjectMesh
	ObjectDiffuseAtlas
	ObjectNormalAtlas
	TreeMesh
	TreeTexture
	TreeTypeList

	categoryCount
)

// Arity of the two argument shapes. Cell categories take (worldSpace, x, y, scale);
// world categories take (worldSpace).
const (
	CellArity  = 4
	WorldArity = 1
)

// DefaultMaxLen bounds every produced name unless a category has its own limit. It matches the
// host's MAX_PATH buffers.
const DefaultMaxLen = 260

type categoryDef struct {
	name  string
	lod   LODType
	arity int
	// maxLen bounds the names of this category. It is zero in the table below and set per
	// Resolver from the configured limits.
	maxLen int
	// Templates use explicit argument indexes so the world space can appear twice. The season
	// suffix is always the argument after the positional ones.
	seasonal string
	fallback string
}

var categories = [categoryCount]categoryDef{
	TerrainMesh: {
		name: "terrain_mesh", lod: Terrain, arity: CellArity,
		seasonal: `Data\Meshes\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d.%[5]s.BTR`,
		fallback: `Data\Meshes\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d.BTR`,
	},
	TerrainDiffuse: {
		name: "terrain_diffuse", lod: Terrain, arity: CellArity,
		seasonal: `Data\Textures\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d.%[5]s.DDS`,
		fallback: `Data\Textures\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d.DDS`,
	},
	TerrainNormal: {
		name: "terrain_normal", lod: Terrain, arity: CellArity,
		seasonal: `Data\Textures\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d.%[5]s_n.DDS`,
		fallback: `Data\Textures\Terrain\%[1]s\%[1]s.%[4]d.%[2]d.%[3]d_n.DDS`,
	},
	ObjectMesh: {
		name: "object_mesh", lod: Object, arity: CellArity,
		seasonal: `Data\Meshes\Terrain\%[1]s\Objects\%[1]s.%[4]d.%[2]d.%[3]d.%[5]s.BTO`,
		fallback: `Data\Meshes\Terrain\%[1]s\Objects\%[1]s.%[4]d.%[2]d.%[3]d.BTO`,
	},
	ObjectDiffuseAtlas: {
		name: "object_diffuse_atlas", lod: Object, arity: WorldArity,
		seasonal: `Data\Textures\Terrain\%[1]s\Objects\%[1]s.Objects.%[2]s.DDS`,
		fallback: `Data\Textures\Terrain\%[1]s\Objects\%[1]s.Objects.DDS`,
	},
	ObjectNormalAtlas: {
		name: "object_normal_atlas", lod: Object, arity: WorldArity,
		seasonal: `Data\Textures\Terrain\%[1]s\Objects\%[1]s.Objects.%[2]s_n.DDS`,
		fallback: `Data\Textures\Terrain\%[1]s\Objects\%[1]s.Objects_n.DDS`,
	},
	TreeMesh: {
		name: "tree_mesh", lod: Tree, arity: CellArity,
		seasonal: `Data\Meshes\Terrain\%[1]s\Trees\%[1]s.%[4]d.%[2]d.%[3]d.%[5]s.BTT`,
		fallback: `Data\Meshes\Terrain\%[1]s\Trees\%[1]s.%[4]d.%[2]d.%[3]d.BTT`,
	},
	TreeTexture: {
		name: "tree_texture", lod: Tree, arity: WorldArity,
		seasonal: `Data\Textures\Terrain\%[1]s\Trees\%[1]sTreeLOD.%[2]s.DDS`,
		fallback: `Data\Textures\Terrain\%[1]s\Trees\%[1]sTreeLOD.DDS`,
	},
	TreeTypeList: {
		name: "tree_type_list", lod: Tree, arity: WorldArity,
		seasonal: `Data\Meshes\Terrain\%[1]s\Trees\%[1]s.%[2]s.LST`,
		fallback: `Data\Meshes\Terrain\%[1]s\Trees\%[1]s.LST`,
	},
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

func (c Category) valid() bool {
	return c >= 0 && c < categoryCount
}

func (c Category) String() string {
	if c.valid() {
		return categories[c].name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// LODType returns the LOD group the category belongs to.
func (c Category) LODType() LODType {
	return categories[c].lod
}

// Arity returns the number of positional arguments the category expects.
func (c Category) Arity() int {
	return categories[c].arity
}

// ParseCategory accepts names such as "terrain_mesh" or "tree-type-list".
func ParseCategory(v string) (Category, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")
	for i, def := range categories {
		if def.name == norm {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown LOD category %q", v)
}
