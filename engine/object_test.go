package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectSelectLODThresholds(t *testing.T) {
	lod0 := &Object{}
	lod1 := &Object{}
	base := &Object{LODs: []*Object{lod0, lod1}}

	assert.Same(t, base, base.SelectLOD(100))
	assert.Same(t, base, base.SelectLOD(LODDistanceThreshold-1))
	assert.Same(t, lod0, base.SelectLOD(LODDistanceThreshold))
	assert.Same(t, lod0, base.SelectLOD(LODDistanceThreshold*2-1))
	assert.Same(t, lod1, base.SelectLOD(LODDistanceThreshold*2))
	assert.Same(t, lod1, base.SelectLOD(LODDistanceThreshold*100)) // clamps to the last LOD
}

func TestObjectSelectLODWithNoVariantsReturnsSelf(t *testing.T) {
	base := &Object{}
	assert.Same(t, base, base.SelectLOD(1e9))
}

func TestObjectNearClipDistanceFallsBackToDefault(t *testing.T) {
	o := &Object{}
	assert.Equal(t, NearPlaneDistance, o.NearClipDistance())

	o.NearClipOverride = 50
	assert.Equal(t, 50.0, o.NearClipDistance())
}

func TestObjectSyncLODFlagsMirrorsParent(t *testing.T) {
	lod := &Object{}
	parent := &Object{
		IsStatic:           true,
		IsFlatShaded:       true,
		HasLighting:        true,
		CanOccludeSurfaces: true,
		FresnelFactor:      0.5,
		SectorID:           3,
		LODs:               []*Object{lod},
	}

	parent.SyncLODFlags()

	assert.True(t, lod.IsStatic)
	assert.True(t, lod.IsFlatShaded)
	assert.True(t, lod.HasLighting)
	assert.True(t, lod.CanOccludeSurfaces)
	assert.Equal(t, 0.5, lod.FresnelFactor)
	assert.Equal(t, 3, lod.SectorID)
}

func TestMorphStateOneShotSnapsToFirstTarget(t *testing.T) {
	m := &MorphState{}
	m.Start(1.0, false)

	targets := []Vec3{{0, 0, 0}, {10, 0, 0}, {20, 0, 0}}
	base := Vec3{}

	mid := m.Update(0.5, targets, base)
	assert.InDelta(t, 10, mid.X, 1e-9) // halfway through a 3-target sequence

	final := m.Update(0.6, targets, base) // pushes elapsed past duration
	assert.Equal(t, targets[0], final)
	assert.Equal(t, MorphIdle, m.Phase)
}

func TestMorphStateLoopReversesDirection(t *testing.T) {
	m := &MorphState{}
	m.Start(1.0, true)

	targets := []Vec3{{0, 0, 0}, {10, 0, 0}}
	base := Vec3{}

	m.Update(1.0, targets, base) // completes first pass, flips direction
	assert.Equal(t, MorphPlaying, m.Phase)

	pos := m.Update(0.5, targets, base)
	// Reversed halfway through should sit back near the midpoint.
	assert.InDelta(t, 5, pos.X, 1e-9)
}

func TestMorphStateWithFewerThanTwoTargetsIsNoop(t *testing.T) {
	m := &MorphState{}
	m.Start(1.0, false)

	base := Vec3{1, 2, 3}
	assert.Equal(t, base, m.Update(0.5, []Vec3{{9, 9, 9}}, base))
}

func TestSectorContains(t *testing.T) {
	s := &Sector{Min: Vec3{0, 0, 0}, Max: Vec3{10, 10, 10}}
	assert.True(t, s.Contains(Vec3{5, 5, 5}))
	assert.True(t, s.Contains(Vec3{0, 0, 0}))
	assert.False(t, s.Contains(Vec3{-1, 5, 5}))
	assert.False(t, s.Contains(Vec3{11, 5, 5}))
}
