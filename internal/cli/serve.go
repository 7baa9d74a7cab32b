package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	agreementstore "registrar/internal/agreement/store"
	authservice "registrar/internal/auth/service"
	"registrar/internal/auth/store/revocation"
	userstore "registrar/internal/auth/store/user"
	ballotstore "registrar/internal/ballot/store"
	compliancestore "registrar/internal/compliance/store"
	dashboardstore "registrar/internal/dashboard/store"
	documentstore "registrar/internal/document/store"
	jwttoken "registrar/internal/jwt_token"
	notificationstore "registrar/internal/notification/store"
	orgstore "registrar/internal/organization/store"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/metrics"
	"registrar/internal/platform/postgres"
	redisclient "registrar/internal/platform/redis"
	ratelimit "registrar/internal/ratelimit/middleware"
	rlstore "registrar/internal/ratelimit/store"
	refstore "registrar/internal/reference/store"
	settingsstore "registrar/internal/settings/store"
	trainingstore "registrar/internal/training/store"
	httptransport "registrar/internal/transport/http"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/audit/kafka"
	"registrar/pkg/platform/audit/publisher"
	auditpg "registrar/pkg/platform/audit/store/postgres"
	"registrar/pkg/platform/tx"
)

const (
	shutdownTimeout  = 10 * time.Second
	auditPartitions  = 3
	topicSetupBudget = 10 * time.Second
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the registry API.

The schema is migrated on start-up. REDIS_URL enables shared rate limiting
and token revocation; KAFKA_BROKERS adds a Kafka audit sink.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *RootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log := opts.Config, opts.Logger

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return err
	}
	log.Info("schema ready", "applied", applied)

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	pub, closeAudit, err := auditPublisher(ctx, cfg.Audit.KafkaBrokers, cfg.Audit.Topic, cfg.Audit.BufferSize, db, m, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	var revocations authservice.TokenRevoker = revocation.NewPostgresTRL(db)
	var limiter ratelimit.Store = rlstore.NewInMemory()
	if rdb != nil {
		revocations = revocation.NewRedisTRL(rdb.Client, revocation.WithLatencyObserver(m))
		limiter = rlstore.NewRedis(rdb.Client)
	}

	routes, err := httptransport.Build(postgresStores(db, revocations), httptransport.Platform{
		Logger:    log,
		Metrics:   m,
		Audit:     pub,
		Tx:        tx.SQLRunner{DB: db},
		Tokens:    jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer),
		Auth:      cfg.Auth,
		RateLimit: ratelimit.New(limiter, cfg.RateLimit, log, ratelimit.WithMetrics(m)),
	})
	if err != nil {
		return err
	}
	checks := []httptransport.Check{{Name: "database", Ping: db.PingContext}}
	if rdb != nil {
		checks = append(checks, httptransport.Check{Name: "redis", Ping: rdb.Health})
	}
	routes.Health = httptransport.NewHealth(log, checks...)
	routes.MetricsHandler = promhttp.Handler()

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routes))
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting registrar", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func postgresStores(db *sql.DB, revocations authservice.TokenRevoker) httptransport.Stores {
	return httptransport.Stores{
		Users:         userstore.NewPostgres(db),
		Revocations:   revocations,
		Reference:     refstore.NewPostgres(db),
		Organizations: orgstore.NewPostgres(db),
		Agreements:    agreementstore.NewPostgres(db),
		Ballots:       ballotstore.NewPostgres(db),
		Trainings:     trainingstore.NewPostgres(db),
		Compliance:    compliancestore.NewPostgres(db),
		Documents:     documentstore.NewPostgres(db),
		Settings:      settingsstore.NewPostgres(db),
		Notifications: notificationstore.NewPostgres(db),
		Dashboard:     dashboardstore.NewPostgres(db),
	}
}

// auditPublisher fans events out to the audit_events table and, when brokers
// are configured, a Kafka topic. The returned func drains the queue.
func auditPublisher(ctx context.Context, brokers []string, topic string, buffer int, db *sql.DB, m *metrics.Metrics, log *slog.Logger) (*publisher.Publisher, func(), error) {
	sinks := audit.Fanout{auditpg.New(db)}
	closers := []func(){}
	if len(brokers) > 0 {
		sink, err := kafka.New(brokers, topic)
		if err != nil {
			return nil, nil, err
		}
		setupCtx, cancel := context.WithTimeout(ctx, topicSetupBudget)
		if err := sink.EnsureTopic(setupCtx, auditPartitions); err != nil {
			log.Warn("audit topic not ensured", "topic", topic, "error", err)
		}
		cancel()
		sinks = append(sinks, sink)
		closers = append(closers, sink.Close)
	}
	pub := publisher.NewPublisher(sinks,
		publisher.WithAsyncBuffer(buffer),
		publisher.WithLogger(log),
		publisher.WithDropCounter(m),
	)
	return pub, func() {
		pub.Close()
		for _, c := range closers {
			c()
		}
	}, nil
}
