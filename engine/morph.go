package engine

// MorphPhase is the morph player's state, per spec.md §4.7.
type MorphPhase int

const (
	MorphIdle MorphPhase = iota
	MorphPlaying
)

// MorphState drives time-parameterized blending between a vertex's
// ordered list of alternative positions (MorphTargets), recovered from
// original_source/Source/System/Objects.cpp (startMorph/updateMorph).
type MorphState struct {
	Phase    MorphPhase
	Duration float64
	Loop     bool
	Elapsed  float64
	reversed bool
}

// Start begins morph playback. A no-op duration <= 0 is ignored.
func (m *MorphState) Start(duration float64, loop bool) {
	if duration <= 0 {
		return
	}
	m.Phase = MorphPlaying
	m.Duration = duration
	m.Loop = loop
	m.Elapsed = 0
	m.reversed = false
}

// Update advances playback by dt seconds and returns the interpolated
// position for a vertex given its ordered morph target list. If the
// vertex has fewer than 2 targets, its base position is returned
// unchanged (morph target index out of range is a silent no-op).
func (m *MorphState) Update(dt float64, targets []Vec3, base Vec3) Vec3 {
	if m == nil || m.Phase != MorphPlaying || len(targets) < 2 {
		return base
	}

	m.Elapsed += dt
	t := m.Elapsed / m.Duration
	if t > 1 {
		t = 1
	}

	n := len(targets)
	frameProgress := t * float64(n-1)
	if m.reversed {
		frameProgress = float64(n-1) - frameProgress
	}

	lo := int(frameProgress)
	if lo >= n-1 {
		lo = n - 2
	}
	frac := frameProgress - float64(lo)

	pos := targets[lo].Lerp(targets[lo+1], frac)

	if t >= 1 {
		if m.Loop {
			m.reversed = !m.reversed
			m.Elapsed = 0
		} else {
			m.Phase = MorphIdle
			pos = targets[0]
		}
	}

	return pos
}
