package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneAddGetRemove(t *testing.T) {
	scene := NewScene()

	a := &Object{}
	b := &Object{}
	c := &Object{}
	scene.Add("a", a)
	scene.Add("b", b)
	scene.Add("c", c)

	assert.Same(t, b, scene.Get("b"))

	scene.Remove("a")

	// b and c must still resolve correctly after the index shift that
	// removing a's lower index causes.
	assert.Same(t, b, scene.Get("b"))
	assert.Same(t, c, scene.Get("c"))
	assert.Nil(t, scene.Get("a"))
	assert.Len(t, scene.Objects(), 2)
}

func TestSceneRemoveUnknownKeyIsNoop(t *testing.T) {
	scene := NewScene()
	scene.Add("a", &Object{})

	assert.NotPanics(t, func() { scene.Remove("missing") })
	assert.Len(t, scene.Objects(), 1)
}

func TestSceneTracksLightsSeparately(t *testing.T) {
	scene := NewScene()
	mesh := &Object{Kind: KindMesh}
	light := &Object{Kind: KindLight, LightData: &LightData{}}
	scene.Add("mesh", mesh)
	scene.Add("light", light)

	assert.Len(t, scene.Lights(), 1)
	assert.Same(t, light, scene.Lights()[0])

	scene.Remove("light")
	assert.Empty(t, scene.Lights())
}

func TestSceneSectorVisibility(t *testing.T) {
	scene := NewScene()
	scene.AddSector(&Sector{ID: 1, Min: Vec3{0, 0, 0}, Max: Vec3{10, 10, 10}})

	inSector := &Object{SectorID: 1}
	global := &Object{SectorID: GlobalSectorID}

	// Camera outside the sector: only the global object is visible.
	scene.RebuildOccupiedSectors(Vec3{100, 100, 100})
	assert.False(t, scene.IsObjectVisible(inSector))
	assert.True(t, scene.IsObjectVisible(global))

	// Camera inside the sector: both are visible.
	scene.RebuildOccupiedSectors(Vec3{5, 5, 5})
	assert.True(t, scene.IsObjectVisible(inSector))
	assert.True(t, scene.IsObjectVisible(global))
}

func TestSceneApplyCommandMutatesSettings(t *testing.T) {
	scene := NewScene()

	changed, err := scene.ApplyCommand("brightness", []string{"2.5"})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2.5, scene.Settings.Brightness)

	changed, err = scene.ApplyCommand("backgroundColor", []string{"10", "20", "30"})
	assert.NoError(t, err)
	assert.False(t, changed) // background color does not affect static lighting
	assert.Equal(t, Color{R: 10, G: 20, B: 30}, scene.Settings.BackgroundColor)

	_, err = scene.ApplyCommand("notACommand", nil)
	assert.Error(t, err)
}

func TestSceneApplyCommandRejectsMalformedArgs(t *testing.T) {
	scene := NewScene()

	_, err := scene.ApplyCommand("ambientLightColor", []string{"1", "2"})
	assert.Error(t, err)

	_, err = scene.ApplyCommand("brightness", nil)
	assert.Error(t, err)
}
