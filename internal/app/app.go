package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/gamepole/internal/config"
	"github.com/vancomm/gamepole/internal/middleware"
	"github.com/vancomm/gamepole/internal/session"
)

type App struct {
	log    *logrus.Logger
	cfg    *config.Config
	router *http.ServeMux
	store  *session.Store
	jwt    *config.JWT
	ws     *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config) (*App, error) {
	j, err := config.NewJWT(cfg.JWT, cfg.Development())
	if err != nil {
		return nil, err
	}

	app := &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(),
		jwt:    j,
		ws:     config.NewWebSocket(cfg.Server.AllowedOrigins),
	}

	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.jwt),
		middleware.Cors(a.cfg.Server.AllowedOrigins),
		middleware.Logging(a.log),
	)
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", a.cfg.Server.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		a.sweep(gCtx)
		return nil
	})

	return g.Wait()
}

func (a *App) sweep(ctx context.Context) {
	interval := a.cfg.Server.SweepInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.store.Sweep(a.cfg.Server.SessionTTL); n > 0 {
				a.log.WithField("removed", n).Debug("swept expired sessions")
			}
		}
	}
}
