package props

import (
	"fmt"
	"strings"

	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
)

// Despawner removes a world object, either for good or back to its pool.
type Despawner interface {
	Destroy()
	Deactivate()
}

type Removal string

const (
	RemoveDestroy    Removal = "destroy"
	RemoveDeactivate Removal = "deactivate"
)

// ItemPlaceholder marks where the item name goes in a pickup hint.
const ItemPlaceholder = "{item}"

type PickupConfig struct {
	Name     string  `json:"name" yaml:"name"`
	KeyName  string  `json:"key_name" yaml:"key_name"`
	ItemName string  `json:"item_name,omitempty" yaml:"item_name,omitempty"`
	Removal  Removal `json:"removal,omitempty" yaml:"removal,omitempty"`
	// Hint is shown while focused; every ItemPlaceholder in it is replaced by ItemName.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

func (c PickupConfig) Validate() error {
	if c.KeyName == "" {
		return fmt.Errorf("pickup %q: key_name is required", c.Name)
	}
	switch c.Removal {
	case "", RemoveDestroy, RemoveDeactivate:
		return nil
	default:
		return fmt.Errorf("pickup %q: unknown removal %q", c.Name, c.Removal)
	}
}

func (c PickupConfig) withDefaults() PickupConfig {
	if c.Name == "" {
		c.Name = "key_pickup"
	}
	if c.ItemName == "" {
		c.ItemName = c.KeyName
	}
	if c.Removal == "" {
		c.Removal = RemoveDestroy
	}
	if c.Hint == "" {
		c.Hint = "Press [E] to pick up [" + ItemPlaceholder + "]"
	}
	return c
}

var _ interact.Interactable = (*KeyPickup)(nil)

// KeyPickup grants its key to the acting agent and removes itself. It cannot be
// picked up twice. Clearing the highlight is left to the focus owner, which exits
// focus once the despawned collider stops resolving.
type KeyPickup struct {
	common
	cfg       PickupConfig
	store     interact.KeyGranter
	despawn   Despawner
	picked    bool
	configErr error
}

func NewKeyPickup(cfg PickupConfig, store interact.KeyGranter, despawn Despawner, opts ...Option) *KeyPickup {
	k := &KeyPickup{cfg: cfg.withDefaults(), store: store, despawn: despawn}
	k.apply("key_pickup", k.cfg.Name, opts)
	if store == nil {
		k.configErr = interact.ErrMissingStore
		k.log.Error("pickup disabled", log.Error(k.configErr))
	}
	return k
}

func (k *KeyPickup) Name() string     { return k.cfg.Name }
func (k *KeyPickup) KeyName() string  { return k.cfg.KeyName }
func (k *KeyPickup) Picked() bool     { return k.picked }
func (k *KeyPickup) ConfigErr() error { return k.configErr }

func (k *KeyPickup) HintText(interact.Agent) string {
	if k.picked || k.configErr != nil {
		return ""
	}
	return strings.ReplaceAll(k.cfg.Hint, ItemPlaceholder, k.cfg.ItemName)
}

func (k *KeyPickup) CanPrimary(a interact.Agent) bool {
	return a != nil && !k.picked && k.configErr == nil
}

func (k *KeyPickup) Primary(a interact.Agent) {
	if !k.CanPrimary(a) {
		return
	}
	k.picked = true
	k.store.GrantKey(a.ID(), k.cfg.KeyName)

	if k.despawn != nil {
		if k.cfg.Removal == RemoveDeactivate {
			k.despawn.Deactivate()
		} else {
			k.despawn.Destroy()
		}
	}
	k.log.Info("picked up", log.String("key", k.cfg.KeyName), log.String("agent", string(a.ID())))
	k.emit(interact.EventKeyPicked, a, map[string]any{"key": k.cfg.KeyName})
}
