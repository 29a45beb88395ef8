package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/interact/internal/core/physics"
)

func TestLocomotionToggleKeepsInput(t *testing.T) {
	p := NewPlayer(physics.Pose{})
	p.SetLocomotionEnabled(false)

	assert.True(t, p.Enabled(InputBehaviour))
	assert.False(t, p.Enabled("movement"))
	assert.False(t, p.Enabled("look"))
	assert.False(t, p.CanMove())

	p.SetLocomotionEnabled(true)
	assert.True(t, p.CanMove())
	assert.False(t, p.Enabled("fly"))
}

func TestLookIgnoredWhileDisabled(t *testing.T) {
	p := NewPlayer(physics.Pose{Yaw: 10})
	p.SetLocomotionEnabled(false)
	p.Look(30, 0)
	assert.Equal(t, 10.0, p.Pose().Yaw)

	p.SetLocomotionEnabled(true)
	p.Look(30, 200)
	assert.Equal(t, 40.0, p.Pose().Yaw)
	assert.Equal(t, 89.0, p.Pitch)
}

func TestEyeRay(t *testing.T) {
	p := NewPlayer(physics.Pose{Position: physics.Vec3{X: 1}})
	ray := p.Eye()
	assert.Equal(t, physics.Vec3{X: 1, Y: 1.6}, ray.Origin)
	assert.InDelta(t, 1, ray.Direction.Z, 1e-9)
	assert.NotEmpty(t, p.ID())
	assert.NotEqual(t, p.ID(), NewPlayer(physics.Pose{}).ID())
}
