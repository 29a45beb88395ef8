package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/interact/internal/config"
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/core/world"
	"github.com/zeusync/interact/internal/injector"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app); err != nil {
		app.Log.Error("run failed", log.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, app *injector.App) error {
	sub, err := app.Bus.Subscribe(bus.Wildcard, func(e bus.Event) error {
		app.Log.Info("event",
			log.String("type", e.Type),
			log.String("source", e.Source),
			log.Float64("at", e.At),
		)
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Bus.Unsubscribe(sub) }()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		return loop(gctx, app)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			app.Log.Info("shutdown signal received")
		}
		return nil
	})
	return g.Wait()
}

// loop replays the scene script at the configured tick rate and logs every hint change.
func loop(ctx context.Context, app *injector.App) error {
	script := world.NewScript(app.Scene.Script)
	ticker := time.NewTicker(app.Config.TickInterval())
	defer ticker.Stop()

	dt := app.Config.TickSeconds()
	var last interact.Hint
	for tick := 1; ; tick++ {
		select {
		case <-ctx.Done():
			app.Log.Info("stopped", log.Int("tick", tick))
			return nil
		case <-ticker.C:
		}

		in, note, ok := script.Next()
		if !ok && app.Config.MaxTicks == 0 {
			app.Log.Info("script finished", log.Int("ticks", tick-1), log.Float64("sim_time", app.Sim.Now()))
			return nil
		}
		if note != "" {
			app.Log.Info("step", log.String("note", note), log.Int("tick", tick))
		}

		app.Sim.Step(dt, in)

		if hint := app.Sim.Hint(); hint != last {
			app.Log.Info("hint",
				log.String("text", hint.Text),
				log.Bool("can_interact", hint.CanInteract),
				log.String("camera", app.Sim.Cameras().Active()),
			)
			last = hint
		}
		if app.Config.MaxTicks > 0 && tick >= app.Config.MaxTicks {
			app.Log.Info("max ticks reached", log.Int("ticks", tick))
			return nil
		}
	}
}
