package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/api"
	"github.com/WebHash-eth/sui-domain/internal/chain/ratelimit"
	"github.com/WebHash-eth/sui-domain/internal/chain/sui/rpc"
	"github.com/WebHash-eth/sui-domain/internal/circuitbreaker"
	"github.com/WebHash-eth/sui-domain/internal/config"
	"github.com/WebHash-eth/sui-domain/internal/linker"
	"github.com/WebHash-eth/sui-domain/internal/metrics"
	"github.com/WebHash-eth/sui-domain/internal/signer"
	"github.com/WebHash-eth/sui-domain/internal/suins"
	"github.com/WebHash-eth/sui-domain/internal/tracing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a.cfg, a.logger)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting suilink",
		"sui_rpc", cfg.Sui.RPCURL,
		"network", cfg.Sui.Network,
		"signer_mode", cfg.Signer.Mode,
		"package", cfg.Chain.PackageID,
		"http_port", cfg.Server.HTTPPort,
		"prefill_cid", cfg.Link.PrefillCID != "",
	)

	shutdownTracing, err := tracing.Init(parent, serviceName, cfg.Sui.Network.String(), tracing.Config(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()
	if cfg.Tracing.Enabled {
		logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	client := newRPCClient(cfg, logger)
	l := linker.New(
		suins.NewResolver(client, cfg.Chain, cfg.Sui.Network.String(), logger),
		suins.NewSubmitter(cfg.Chain, cfg.Sui.Network.String(), logger),
		newSigner(cfg, client, logger),
		linker.Session{PrefillCID: cfg.Link.PrefillCID},
		cfg.Sui.Network,
		logger,
	)

	rl := api.NewRateLimitMiddleware(logger, api.WithTrustedProxyHeaders(cfg.Server.TrustProxyHeaders))
	defer rl.Stop()
	handler := rl.Wrap(api.AuditMiddleware(logger, api.NewServer(l, logger).Handler()))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runHTTPServer(gCtx, cfg.Server, handler, logger)
	})

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("suilink shut down gracefully")
	return nil
}

func runHTTPServer(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			logger.Warn("http server shutdown error", "error", err)
		}
	}()

	logger.Info("http server started", "port", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// newRPCClient wires the rate limiter and circuit breaker into the Sui client.
func newRPCClient(cfg *config.Config, logger *slog.Logger) *rpc.Client {
	network := cfg.Sui.Network.String()
	client := rpc.NewClient(cfg.Sui.RPCURL, network, cfg.Sui.Timeout, logger)
	client.SetRateLimiter(ratelimit.NewLimiter(cfg.Sui.RateRPS, cfg.Sui.RateBurst, network))

	breakerLogger := logger.With("component", "rpc_breaker")
	client.SetBreaker(circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.Sui.BreakerFailureThreshold,
		SuccessThreshold: cfg.Sui.BreakerSuccessThreshold,
		OpenTimeout:      cfg.Sui.BreakerOpenTimeout,
		IsFailure:        rpc.IsEndpointFailure,
		OnStateChange: func(from, to circuitbreaker.State) {
			metrics.RPCBreakerState.WithLabelValues(network).Set(float64(to))
			breakerLogger.Warn("rpc breaker state changed", "from", from.String(), "to", to.String())
		},
	}))
	return client
}

func newSigner(cfg *config.Config, client rpc.RPCClient, logger *slog.Logger) suins.Signer {
	if cfg.Signer.Mode == config.SignerModeExecutor {
		auth := signer.NewRemoteAuthorizer(cfg.Signer.BridgeURL, cfg.Signer.Timeout)
		return signer.NewExecutor(client, auth, cfg.Signer.Sender, cfg.Signer.GasBudget, logger)
	}
	return signer.NewBridge(cfg.Signer.BridgeURL, cfg.Signer.Timeout, logger)
}
