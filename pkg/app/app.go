package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Coconhat/Currency-converter/pkg/cache"
	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/eventbus"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/Coconhat/Currency-converter/pkg/service/session"
)

// Deps contains the infrastructure the application is built from
type Deps struct {
	Converter provider.RateConverter
	Cache     cache.ConversionCache
	EventBus  eventbus.Bus
	Logger    *slog.Logger
	// Closers are released by App.Close in reverse order.
	Closers []io.Closer
}

type App struct {
	Deps           *Deps
	Config         *config.App
	Stats          *converter.Stats
	SessionService *session.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.EventBus == nil {
		deps.EventBus = eventbus.NewSimpleBus()
	}
	if cfg == nil {
		cfg = &config.App{}
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
		Stats:  &converter.Stats{},
	}
	app.setupEventBus()
	app.SessionService = session.New(deps.Converter, cfg.Session, app.ViewOptions(), deps.Logger)
	return app
}

// ViewOptions returns the options every converter view is created with.
func (a *App) ViewOptions() converter.Options {
	opts := converter.Options{
		Bus:    a.Deps.EventBus,
		Logger: a.Deps.Logger,
	}
	if c := a.Config.Converter; c != nil {
		opts.Debounce = c.Debounce
		opts.DiscardStale = c.DiscardStale
	}
	return opts
}

// NewView creates a standalone view outside the session registry.
func (a *App) NewView() *converter.View {
	return converter.New(a.Deps.Converter, a.ViewOptions())
}

// Close unmounts all sessions and releases the infrastructure.
func (a *App) Close() error {
	a.SessionService.Close()
	var errs []error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	a.Stats.Attach(bus)
	bus.Subscribe(converter.EventConversionSucceeded, func(ctx context.Context, e eventbus.Event) {
		if ev, ok := e.(converter.ConversionSucceeded); ok {
			logger.DebugContext(ctx, "Conversion completed",
				"amount", ev.Amount, "from", ev.From, "to", ev.To, "value", ev.Value)
		}
	})
}
