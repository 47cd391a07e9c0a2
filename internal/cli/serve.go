package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/layer-3/redeemer/adapters/events"
	"github.com/layer-3/redeemer/adapters/signature"
	"github.com/layer-3/redeemer/adapters/store"
	"github.com/layer-3/redeemer/adapters/tokenizer"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/internal/config"
	"github.com/layer-3/redeemer/internal/logging"
	"github.com/layer-3/redeemer/ports"
	"github.com/layer-3/redeemer/service"
	transport "github.com/layer-3/redeemer/transport/http"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the redemption HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Run(ctx)
		},
	}
}

// app is the fully wired service
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	router  *gin.Engine
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var client redis.UniversalClient
	if cfg.Store.Backend == config.BackendRedis || cfg.Events.Enabled {
		opts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		c := redis.NewClient(opts)
		a.closers = append(a.closers, c.Close)

		if err := c.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		client = c
	}

	var (
		ledger  ports.Ledger
		minters ports.MinterStore
	)
	switch cfg.Store.Backend {
	case config.BackendRedis:
		ledger = store.NewRedisLedger(client, cfg.Store.Prefix)
		minters = store.NewRedisMinterStore(client, cfg.Store.Prefix)
	default:
		ledger = store.NewMemoryLedger()
		minters = store.NewMemoryMinterStore()
	}

	var eventPub ports.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: client,
			},
			logging.NewWatermillAdapter(logger),
		)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create redis publisher: %w", err)
		}
		a.closers = append([]func() error{publisher.Close}, a.closers...)
		eventPub = events.NewWatermillPublisher(publisher)
	}

	admin, err := core.ParseAddress(cfg.Admin.Address)
	if err != nil {
		a.Close()
		return nil, err
	}

	roles := service.NewRoleRegistry(admin, minters, logger)
	initial := make([]common.Address, 0, len(cfg.Admin.Minters))
	for _, m := range cfg.Admin.Minters {
		addr, err := core.ParseAddress(m)
		if err != nil {
			a.Close()
			return nil, err
		}
		initial = append(initial, addr)
	}
	if err := roles.Bootstrap(ctx, initial); err != nil {
		a.Close()
		return nil, err
	}

	var issuer *signature.Issuer
	if cfg.Voucher.IssuerKey != "" {
		issuer, err = signature.NewIssuer(cfg.Voucher.IssuerKey, cfg.Voucher.Domain)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.Info().Str("issuer", issuer.Address().Hex()).Msg("voucher signing enabled")
	}

	redemption := service.NewRedemptionService(
		signature.NewECDSAVerifier(cfg.Voucher.Domain),
		roles,
		ledger,
		eventPub,
		logger,
	)

	tok := tokenizer.NewJWTTokenizer([]byte(cfg.Admin.Secret), cfg.Admin.TokenTTL)

	gin.SetMode(gin.ReleaseMode)
	a.router = transport.SetupRouter(redemption, issuer, tok, logger)

	return a, nil
}

// Run serves HTTP until ctx is cancelled
func (a *app) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", srv.Addr).Str("store", a.cfg.Store.Backend).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Close releases external connections in reverse order of acquisition
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close resource")
		}
	}
	a.closers = nil
}
