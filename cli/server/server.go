// Package server implements the node command: it loads the node
// configuration, builds the logger, spawns the address-book updater and
// the verified-transaction-set mempool, and serves Prometheus metrics for
// the lifetime of the process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zecd-io/zecd/pkg/config"
	"github.com/zecd-io/zecd/pkg/core/mempool"
	"github.com/zecd-io/zecd/pkg/network/addressbook"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the node configuration file",
		Value:   "./config.yaml",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "Address this node advertises to peers (empty if it accepts no inbound connections)",
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Address the Prometheus /metrics endpoint listens on",
		Value: ":2112",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Force debug-level logging regardless of the configured LogLevel",
	}
)

// NewCommands returns the 'node' command.
func NewCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "node",
			Usage:     "Start a node",
			UsageText: "zecd node [--config path] [--listen addr] [--metrics-addr addr] [--debug]",
			Action:    startServer,
			Flags:     []cli.Flag{configFlag, listenFlag, metricsAddrFlag, debugFlag},
		},
	}
}

// newGraceContext returns a context canceled on SIGINT or SIGTERM.
func newGraceContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()
	return ctx
}

func startServer(ctx *cli.Context) error {
	if ctx.Args().Len() > 0 {
		return cli.Exit(fmt.Errorf("unexpected arguments: %v", ctx.Args().Slice()), 1)
	}

	cfgPath := ctx.String("config")
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	log, logLevel, err := cfg.Logger.Build()
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() { _ = log.Sync() }()
	if ctx.Bool("debug") {
		logLevel.SetLevel(zapcore.DebugLevel)
	}

	grace, cancel := context.WithCancel(newGraceContext())
	defer cancel()

	setNodeVersion(config.Version)

	mp := mempool.NewVerifiedSet()

	book, changes, bookMetrics, worker := addressbook.Spawn(addressbook.Config{
		PeerConnectionLimit: cfg.AddressBook.PeerConnectionLimit,
		AddressLimit:        cfg.AddressBook.EffectiveAddressLimit(),
	}, ctx.String("listen"), log)

	var store *addressbook.Store
	if cfg.AddressBook.StorePath != "" {
		store, err = addressbook.OpenStore(cfg.AddressBook.StorePath)
		if err != nil {
			close(changes)
			return cli.Exit(err, 1)
		}
		records, err := store.Load()
		if err != nil {
			_ = store.Close()
			close(changes)
			return cli.Exit(err, 1)
		}
		book.Restore(records)
		log.Info("restored address book", zap.Int("peers", len(records)))
	}

	metricsSrv := newMetricsServer(ctx.String("metrics-addr"))
	metricsErrCh := make(chan error, 1)
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sighup)

	log.Info("node started",
		zap.String("config", cfgPath),
		zap.String("metrics_addr", ctx.String("metrics-addr")))

	var shutdownErr error
Main:
	for {
		select {
		case m := <-bookMetrics:
			log.Debug("address book metrics",
				zap.Int("addresses", m.Addresses),
				zap.Int("limit", m.AddressLimit))
		case err := <-metricsErrCh:
			shutdownErr = fmt.Errorf("metrics server error: %w", err)
			cancel()
		case sig := <-sigCh:
			log.Info("signal received", zap.Stringer("name", sig))
			cfgnew, err := config.LoadFile(cfgPath)
			if err != nil {
				log.Warn("can't reread the config file, signal ignored", zap.Error(err))
				break // Continue working.
			}
			if !ctx.Bool("debug") && cfgnew.Logger.LogLevel != cfg.Logger.LogLevel {
				newLevel, err := zapcore.ParseLevel(cfgnew.Logger.LogLevel)
				if err != nil {
					log.Warn("wrong LogLevel in configuration, signal ignored", zap.Error(err))
					break // Continue working.
				}
				logLevel.SetLevel(newLevel)
				log.Warn("using new logging level", zap.Stringer("level", newLevel))
			}
			cfg = cfgnew
		case <-grace.Done():
			signal.Stop(sigCh)
			break Main
		}
	}

	var closeErr error
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	closeErr = multierr.Append(closeErr, metricsSrv.Shutdown(shutdownCtx))
	shutdownCancel()

	close(changes)
	worker.Wait()

	if store != nil {
		closeErr = multierr.Append(closeErr, store.Save(book.Snapshot()))
		closeErr = multierr.Append(closeErr, store.Close())
	}
	if closeErr != nil {
		log.Warn("errors while shutting down", zap.Error(closeErr))
	}

	log.Info("node stopped", zap.Int("mempool_size", mp.TransactionCount()))

	if shutdownErr != nil {
		return cli.Exit(shutdownErr, 1)
	}
	return nil
}
