// Package server initializes and runs the gallery gateway: a read-only gRPC
// service that signs accounts in with a wallet signature and serves their
// created-items gallery and the public market listing.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/contentstore"
	"github.com/dmitrijs2005/nftmarket/internal/gallery"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/server/auth"
	"github.com/dmitrijs2005/nftmarket/internal/server/config"
	ethcommon "github.com/ethereum/go-ethereum/common"

	gs "github.com/dmitrijs2005/nftmarket/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend chain.Backend
	server  *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	addrs, err := chain.ParseAddresses(c.TokenAddress, c.MarketAddress)
	if err != nil {
		return nil, fmt.Errorf("contract addresses: %w", err)
	}

	rpcURL, err := c.RPCEndpoint()
	if err != nil {
		return nil, err
	}

	backend, err := chain.Dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrNodeUnavailable, err)
	}

	sources := func(account ethcommon.Address) gallery.Source {
		return chain.NewReader(backend, addrs, account)
	}
	loader := gallery.NewLoader(contentstore.NewFetcher(c.FetchTimeout), logger)
	challenges := auth.NewChallengeStore(c.ChallengeValidityDuration)

	s := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, sources, loader, challenges,
		c.SecretKey, c.AccessTokenValidityDuration)

	return &App{config: c, logger: logger, backend: backend, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "network", app.config.Network)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if c, ok := app.backend.(interface{ Close() }); ok {
		c.Close()
	}
}
