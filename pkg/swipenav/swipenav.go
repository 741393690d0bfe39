// Package swipenav assembles the full swipe navigation system: the
// settings store, the resolver registry and the gesture engine, wired
// against a host-provided document and configuration source.
//
// The browser original self-starts on script load; here the host calls
// Attach once its document is available and Close when tearing down.
package swipenav

import (
	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/clock"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/config"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/errors"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/logging"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/pageobject"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipe"
)

// Version is reported in the startup banner.
const Version = "1.0.0"

// Banner is emitted once per Attach, bypassing the level filter. Test
// harnesses scan the log output for it to confirm the system loaded.
const Banner = "swipe-navigation v" + Version + " is ready"

// Options configure Attach. Document and Source are required; a nil Clock
// uses the system clock and a nil Logger uses a console logger with the
// default configuration.
type Options struct {
	Document dom.Document
	Source   config.Source
	Clock    clock.Clock
	Logger   *zerolog.Logger
}

// App is a running swipe navigation instance.
type App struct {
	store       *config.Store
	pages       *pageobject.Registry
	engine      *swipe.Manager
	unsubscribe func()
}

// Attach initializes logging, builds the resolver registry, begins the
// configuration read and arms the gesture engine.
func Attach(opts Options) (*App, error) {
	if opts.Document == nil {
		return nil, errors.Errorf("swipenav.Attach", errors.KindConfig, "no document provided")
	}
	if opts.Source == nil {
		return nil, errors.Errorf("swipenav.Attach", errors.KindConfig, "no configuration source provided")
	}

	var log zerolog.Logger
	if opts.Logger != nil {
		log = *opts.Logger
	} else {
		log = logging.New(logging.DefaultConfig())
	}
	log.Log().Msg(Banner)

	pages := pageobject.NewRegistry(opts.Document, logging.WithComponent(log, "pageobject"))
	store := config.NewStore(opts.Source, opts.Clock, logging.WithComponent(log, "config"))
	engine := swipe.NewManager(opts.Document, pages, store, opts.Clock, logging.WithComponent(log, "swipe"))

	unsubscribe := store.Subscribe(func() {
		logging.SetLevel(store.Current().LogLevel)
	})
	store.ReadAndMonitor()
	logging.SetLevel(store.Current().LogLevel)
	engine.Arm()

	return &App{
		store:       store,
		pages:       pages,
		engine:      engine,
		unsubscribe: unsubscribe,
	}, nil
}

// Close disarms the engine and stops configuration monitoring.
func (a *App) Close() {
	a.engine.Close()
	a.unsubscribe()
	a.store.Close()
}

// Store exposes the settings store, for hosts that need the current
// snapshot or their own change observers.
func (a *App) Store() *config.Store {
	return a.store
}

// Registry exposes the resolver tree, for hosts that inspect resolution
// state.
func (a *App) Registry() *pageobject.Registry {
	return a.pages
}
