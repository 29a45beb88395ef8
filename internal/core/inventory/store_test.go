package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantAndCheck(t *testing.T) {
	s := NewStore()
	assert.False(t, s.HasKey("p1", "main_door"))

	s.GrantKey("p1", "main_door")
	s.GrantKey("p1", "main_door")
	s.GrantKey("p1", "garage")

	assert.True(t, s.HasKey("p1", "main_door"))
	assert.False(t, s.HasKey("p2", "main_door"))
	assert.Equal(t, []string{"garage", "main_door"}, s.Keys("p1"))
	assert.Empty(t, s.Keys("p2"))
}
