package lodpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonal(suffix string, types ...LODType) SeasonSource {
	return SeasonSourceFunc(func(t LODType) (bool, string) {
		for _, allowed := range types {
			if t == allowed {
				return suffix != "", suffix
			}
		}
		return false, ""
	})
}

func TestBuildPathCell(t *testing.T) {
	winter := NewResolver(seasonal("WIN", Terrain, Object, Tree), 0, nil)
	none := NewResolver(seasonal(""), 0, nil)

	tests := []struct {
		cat      Category
		seasonal string
		fallback string
	}{
		{TerrainMesh, `Data\Meshes\Terrain\Tamriel\Tamriel.32.10.-5.WIN.BTR`, `Data\Meshes\Terrain\Tamriel\Tamriel.32.10.-5.BTR`},
		{TerrainDiffuse, `Data\Textures\Terrain\Tamriel\Tamriel.32.10.-5.WIN.DDS`, `Data\Textures\Terrain\Tamriel\Tamriel.32.10.-5.DDS`},
		{TerrainNormal, `Data\Textures\Terrain\Tamriel\Tamriel.32.10.-5.WIN_n.DDS`, `Data\Textures\Terrain\Tamriel\Tamriel.32.10.-5_n.DDS`},
		{ObjectMesh, `Data\Meshes\Terrain\Tamriel\Objects\Tamriel.32.10.-5.WIN.BTO`, `Data\Meshes\Terrain\Tamriel\Objects\Tamriel.32.10.-5.BTO`},
		{TreeMesh, `Data\Meshes\Terrain\Tamriel\Trees\Tamriel.32.10.-5.WIN.BTT`, `Data\Meshes\Terrain\Tamriel\Trees\Tamriel.32.10.-5.BTT`},
	}

	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			got, err := winter.CellPath(tt.cat, "Tamriel", 10, -5, 32)
			require.NoError(t, err)
			assert.Equal(t, tt.seasonal, got)

			got, err = none.CellPath(tt.cat, "Tamriel", 10, -5, 32)
			require.NoError(t, err)
			assert.Equal(t, tt.fallback, got)
		})
	}
}

func TestTerrainMeshFitsLegacyBound(t *testing.T) {
	r := NewResolver(seasonal("WIN", Terrain), 0, nil)
	got, err := r.BuildPath(TerrainMesh, "Tamriel", int16(10), int16(-5), uint32(32))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 0x39)
}

func TestBuildPathWorld(t *testing.T) {
	r := NewResolver(seasonal("AUT", Object, Tree), 0, nil)

	tests := []struct {
		cat      Category
		expected string
	}{
		{ObjectDiffuseAtlas, `Data\Textures\Terrain\Tamriel\Objects\Tamriel.Objects.AUT.DDS`},
		{ObjectNormalAtlas, `Data\Textures\Terrain\Tamriel\Objects\Tamriel.Objects.AUT_n.DDS`},
		{TreeTexture, `Data\Textures\Terrain\Tamriel\Trees\TamrielTreeLOD.AUT.DDS`},
		{TreeTypeList, `Data\Meshes\Terrain\Tamriel\Trees\Tamriel.AUT.LST`},
	}

	for _, tt := range tests {
		got, err := r.WorldPath(tt.cat, "Tamriel")
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestBuildPathPerTypeSwitch(t *testing.T) {
	r := NewResolver(seasonal("SPR", Tree), 0, nil)

	got, err := r.WorldPath(TreeTypeList, "Tamriel")
	require.NoError(t, err)
	assert.Equal(t, `Data\Meshes\Terrain\Tamriel\Trees\Tamriel.SPR.LST`, got)

	got, err = r.WorldPath(ObjectDiffuseAtlas, "Tamriel")
	require.NoError(t, err)
	assert.Equal(t, `Data\Textures\Terrain\Tamriel\Objects\Tamriel.Objects.DDS`, got, "objects are not enabled")
}

func TestBuildPathArityViolationPanics(t *testing.T) {
	r := NewResolver(nil, 0, nil)
	assert.Panics(t, func() { _, _ = r.BuildPath(TerrainMesh, "Tamriel", 1, 2) })
	assert.Panics(t, func() { _, _ = r.BuildPath(ObjectDiffuseAtlas, "Tamriel", "Tamriel") })
	assert.Panics(t, func() { _, _ = r.BuildPath(TerrainMesh, 1, 2, 3, 4) })
	assert.Panics(t, func() { _, _ = r.BuildPath(TerrainMesh, "Tamriel", "x", 2, 3) })
	assert.Panics(t, func() { _, _ = r.BuildPath(Category(99), "Tamriel") })
}

func TestBuildPathTooLong(t *testing.T) {
	r := NewResolver(seasonal("WIN", Terrain), 0x39, nil)
	_, err := r.CellPath(TerrainMesh, "DLC2SolstheimWorld", 10, -5, 32)
	assert.ErrorIs(t, err, ErrPathTooLong)

	got, err := r.CellPath(TerrainMesh, "Tamriel", 10, -5, 32)
	require.NoError(t, err)
	assert.Equal(t, `Data\Meshes\Terrain\Tamriel\Tamriel.32.10.-5.WIN.BTR`, got)
}

func TestCategoryLimits(t *testing.T) {
	r := NewResolver(seasonal("WIN", Terrain, Object), 0, map[Category]int{
		TerrainMesh:        0x39,
		ObjectDiffuseAtlas: 0x1F,
	})
	assert.Equal(t, 0x39, r.CategoryMaxLen(TerrainMesh))
	assert.Equal(t, 0x1F, r.CategoryMaxLen(ObjectDiffuseAtlas))
	assert.Equal(t, DefaultMaxLen, r.CategoryMaxLen(TerrainDiffuse))
	assert.Zero(t, r.CategoryMaxLen(Category(99)))

	got, err := r.CellPath(TerrainMesh, "Tamriel", 10, -5, 32)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 0x39)

	_, err = r.WorldPath(ObjectDiffuseAtlas, "Tamriel")
	assert.ErrorIs(t, err, ErrPathTooLong)

	_, err = r.CellPath(TerrainDiffuse, "DLC2SolstheimWorld", 10, -5, 32)
	assert.NoError(t, err, "other categories keep the default bound")
}

func TestBuildPathInto(t *testing.T) {
	r := NewResolver(seasonal("WIN", Tree), 0, nil)
	want := `Data\Meshes\Terrain\Tamriel\Trees\Tamriel.WIN.LST`

	buf := make([]byte, 64)
	n, err := r.BuildPathInto(buf, TreeTypeList, "Tamriel")
	require.NoError(t, err)
	assert.Equal(t, want, string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])

	small := make([]byte, len(want))
	for i := range small {
		small[i] = 'x'
	}
	_, err = r.BuildPathInto(small, TreeTypeList, "Tamriel")
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, byte('x'), small[0], "nothing is written on failure")
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCategory("Tree-Type-List")
	require.NoError(t, err)
	assert.Equal(t, TreeTypeList, got)

	_, err = ParseCategory("grass")
	assert.Error(t, err)
}
