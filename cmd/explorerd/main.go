package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/chain"
	"github.com/meridianledger/explorer-backend/internal/feed"
	"github.com/meridianledger/explorer-backend/internal/ingest"
	"github.com/meridianledger/explorer-backend/internal/metrics"
	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/resolver"
	"github.com/meridianledger/explorer-backend/internal/store"
	"github.com/meridianledger/explorer-backend/internal/transport"
)

var config struct {
	Addr           string `long:"addr" env:"EXPLORER_ADDR" description:"http listen addr" default:":8000"`
	DataDir        string `long:"data-dir" env:"EXPLORER_DATA_DIR" description:"badger data directory" default:"/var/lib/explorerd"`
	InMemory       bool   `long:"in-memory" env:"EXPLORER_IN_MEMORY" description:"keep all data in memory"`
	FeedAddr       string `long:"feed-addr" env:"EXPLORER_FEED_ADDR" description:"ledger block feed addr" default:"127.0.0.1:9800"`
	Network        string `long:"network" env:"EXPLORER_NETWORK" description:"network label for metrics" default:"mainnet"`
	StabilityDepth uint32 `long:"stability-depth" env:"EXPLORER_STABILITY_DEPTH" description:"epoch stability depth" default:"2160"`
	FeeConstant    uint64 `long:"fee-constant" env:"EXPLORER_FEE_CONSTANT" description:"constant fee component"`
	FeeCoefficient uint64 `long:"fee-coefficient" env:"EXPLORER_FEE_COEFFICIENT" description:"per input/output fee component"`
	FeeCertificate uint64 `long:"fee-certificate" env:"EXPLORER_FEE_CERTIFICATE" description:"per certificate fee component"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	db, err := store.Open(store.Config{Path: config.DataDir, InMemory: config.InMemory}, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	settings := model.Settings{
		Fees: model.Fees{
			Constant:    model.Value(config.FeeConstant),
			Coefficient: model.Value(config.FeeCoefficient),
			Certificate: model.Value(config.FeeCertificate),
		},
		EpochStabilityDepth: config.StabilityDepth,
	}

	index := chain.NewIndex(config.StabilityDepth, logger)
	res := resolver.New(db, index, settings, metrics.NewQuery(config.Network), logger)

	applier := ingest.NewApplier(db, index, logger)
	applier.Start(ctx)
	defer applier.Stop()

	source := feed.NewClient(config.FeedAddr, logger)
	defer func() {
		_ = source.Close()
	}()
	driver, err := ingest.NewDriver(source, applier, metrics.NewIngester(config.Network), logger)
	if err != nil {
		logger.Fatal("Failed to build ingest driver", zap.Error(err))
	}
	go func() {
		if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Ingest driver stopped", zap.Error(err))
			stop()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/", transport.NewHandler(res, logger).Router())
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
