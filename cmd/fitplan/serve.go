package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "fitplan/internal/adapter/http"
	"fitplan/internal/adapter/memory"
	"fitplan/internal/adapter/postgres"
	"fitplan/internal/app"
	"fitplan/internal/config"
	"fitplan/internal/domain"
	"fitplan/internal/logging"
	"fitplan/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type store interface {
	domain.UserRepository
	domain.ProfileRepository
	domain.PlanRepository
}

func serveCmd(env, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*env, *configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})
	log.Infof("starting fitplan [%s]", cfg.Environment)

	db, sessions, closeDB, err := openStore(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeDB()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("fitplan", "server", reg)

	authSvc := app.NewAuthService(db, sessions, db)
	srv := adapthttp.New(adapthttp.Services{
		Auth:     authSvc,
		Profiles: app.NewProfileService(db),
		Plans:    app.NewPlanService(db, db, metricsManager),
		Progress: app.NewProgressService(db, db),
	}, metricsManager, reg).
		WithAllowedOrigins(cfg.AllowedOrigins).
		WithWebDir(cfg.WebDir)
	if cfg.ForwardAuth {
		srv.WithForwardAuth()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.SSOEnabled() {
		oidcConfig, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			return err
		}
		srv.WithOIDC(oidcConfig)
		log.Infof("sso enabled via %s", cfg.OIDCIssuer)
	}

	purger, err := schedulePurge(ctx, cfg.SessionPurgeSchedule, authSvc, metricsManager)
	if err != nil {
		return err
	}
	purger.Start()
	defer purger.Stop()

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		Addr:              cfg.Addr,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	chServeErr := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			chServeErr <- err
		}
	}()

	select {
	case receivedSig := <-chOsInterrupt:
		log.Warnf("signal [%s] received ...", receivedSig)
	case err := <-chServeErr:
		return err
	}

	cancel()
	gracefulShutdown(httpServer)
	return nil
}

func openStore(databaseURL string) (store, domain.SessionRepository, func(), error) {
	if databaseURL == "" {
		log.Warnln("DATABASE_URL not set, using in-memory storage")
		db := memory.New()
		return db, db.NewSessionRepo(), func() {}, nil
	}

	db, err := postgres.Open(databaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, postgres.NewSessionRepo(db), func() {
		if err := db.Close(); err != nil {
			log.Errorf("close db: %s", err)
		}
	}, nil
}

// schedulePurge registers the expired session cleanup on schedule, a cron
// expression or descriptor such as "@hourly".
func schedulePurge(ctx context.Context, schedule string, authSvc *app.AuthService, m *metrics.Manager) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := authSvc.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Errorf("purge expired sessions: %s", err)
			return
		}
		m.CounterSessionsPurged.Add(float64(n))
		if n > 0 {
			log.Debugf("purged %d expired sessions", n)
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func gracefulShutdown(httpServer *http.Server) {
	maxWaitDuration := time.Second * 10
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")
}
