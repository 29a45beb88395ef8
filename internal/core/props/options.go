package props

import (
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interact"
	"github.com/zeusync/interact/internal/core/observability/log"
)

// common carries the collaborators shared by every prop.
type common struct {
	interact.Base
	log    log.Log
	events interact.Emitter
}

type Option func(*common)

func WithLogger(l log.Log) Option {
	return func(c *common) { c.log = l }
}

func WithEvents(b bus.EventBus, clock func() float64) Option {
	return func(c *common) { c.events = interact.Emitter{Bus: b, Clock: clock} }
}

func WithHighlighter(h interact.Highlighter) Option {
	return func(c *common) { c.Highlight = h }
}

func (c *common) apply(component, name string, opts []Option) {
	c.log = log.NewNop()
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(log.String("component", component), log.String("name", name))
	c.events.Source = name
}

func (c *common) emit(eventType string, a interact.Agent, data map[string]any) {
	if err := c.events.Emit(eventType, a, data); err != nil {
		c.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
