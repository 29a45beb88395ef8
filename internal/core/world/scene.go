package world

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/interact/internal/core/physics"
)

// Scene describes a level: its objects, where the player spawns, and an optional
// scripted input sequence for headless runs.
type Scene struct {
	Name    string       `json:"name" yaml:"name"`
	Reach   float64      `json:"reach,omitempty" yaml:"reach,omitempty"`
	Player  Spawn        `json:"player" yaml:"player"`
	Objects []ObjectSpec `json:"objects" yaml:"objects"`
	Script  []Step       `json:"script,omitempty" yaml:"script,omitempty"`
}

type Spawn struct {
	Position  physics.Vec3 `json:"position" yaml:"position"`
	Yaw       float64      `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	Pitch     float64      `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	EyeHeight float64      `json:"eye_height,omitempty" yaml:"eye_height,omitempty"`
}

type ObjectSpec struct {
	Name         string            `json:"name" yaml:"name"`
	Parent       string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Position     physics.Vec3      `json:"position,omitempty" yaml:"position,omitempty"`
	Yaw          float64           `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	Collider     *Collider         `json:"collider,omitempty" yaml:"collider,omitempty"`
	Inactive     bool              `json:"inactive,omitempty" yaml:"inactive,omitempty"`
	Interactable *InteractableSpec `json:"interactable,omitempty" yaml:"interactable,omitempty"`
}

// InteractableSpec names a registered kind; Params are decoded by its factory.
type InteractableSpec struct {
	Kind   string    `yaml:"kind"`
	Params yaml.Node `yaml:"params,omitempty"`
}

// Decode fills v from the params node. Missing params leave v untouched.
func (s InteractableSpec) Decode(v any) error {
	if s.Params.Kind == 0 {
		return nil
	}
	if err := s.Params.Decode(v); err != nil {
		return fmt.Errorf("decode %s params: %w", s.Kind, err)
	}
	return nil
}

// LoadSceneYAML decodes and validates a scene.
func LoadSceneYAML(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return LoadSceneYAML(f)
}

// Validate checks structure only; interactable params are checked by their factories.
func (s *Scene) Validate() error {
	if s.Reach < 0 {
		return fmt.Errorf("%w: reach must not be negative", ErrInvalidScene)
	}
	seen := make(map[string]struct{}, len(s.Objects))
	for i, o := range s.Objects {
		if o.Name == "" {
			return fmt.Errorf("%w: object %d has no name", ErrInvalidScene, i)
		}
		if _, ok := seen[o.Name]; ok {
			return fmt.Errorf("%w: %w: %s", ErrInvalidScene, ErrDuplicateObject, o.Name)
		}
		if o.Parent != "" {
			if _, ok := seen[o.Parent]; !ok {
				return fmt.Errorf("%w: %s: parent %s must be declared earlier", ErrInvalidScene, o.Name, o.Parent)
			}
		}
		seen[o.Name] = struct{}{}
		if err := o.Collider.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidScene, o.Name, err)
		}
		if o.Interactable != nil && o.Interactable.Kind == "" {
			return fmt.Errorf("%w: %s: interactable kind is required", ErrInvalidScene, o.Name)
		}
	}
	for i, st := range s.Script {
		if st.Ticks < 0 {
			return fmt.Errorf("%w: script step %d: ticks must not be negative", ErrInvalidScene, i)
		}
	}
	return nil
}

func (c *Collider) validate() error {
	if c == nil {
		return nil
	}
	switch c.Shape {
	case ShapeSphere:
		if c.Radius <= 0 {
			return errors.New("sphere collider needs a positive radius")
		}
	case ShapeBox:
		if c.Size.X == 0 || c.Size.Y == 0 || c.Size.Z == 0 {
			return errors.New("box collider needs a non-zero size")
		}
	default:
		return fmt.Errorf("unknown collider shape %q", c.Shape)
	}
	return nil
}
