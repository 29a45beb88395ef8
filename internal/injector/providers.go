package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/interact/internal/config"
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/inventory"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/world"
)

// App is the assembled scene runner.
type App struct {
	Config config.Config
	Log    log.Log
	Bus    bus.EventBus
	Scene  *world.Scene
	Sim    *world.Simulation
}

func NewApp(cfg config.Config, l log.Log, b bus.EventBus, scene *world.Scene, sim *world.Simulation) *App {
	return &App{Config: cfg, Log: l, Bus: b, Scene: scene, Sim: sim}
}

// ProvideLogger builds the process logger; the cleanup flushes it.
func ProvideLogger(cfg config.Config) (*log.Logger, func()) {
	l := log.New(cfg.Level())
	return l, func() { _ = l.Sync() }
}

// ProvideScene loads the configured scene and applies the reach override.
func ProvideScene(cfg config.Config) (*world.Scene, error) {
	scene, err := world.LoadSceneFile(cfg.Scene)
	if err != nil {
		return nil, err
	}
	if cfg.Reach > 0 {
		scene.Reach = cfg.Reach
	}
	return scene, nil
}

var LogSet = wire.NewSet(ProvideLogger, wire.Bind(new(log.Log), new(*log.Logger)))

var CoreSet = wire.NewSet(bus.New, inventory.NewStore, world.DefaultRegistry)

var SceneSet = wire.NewSet(ProvideScene, world.Build)
