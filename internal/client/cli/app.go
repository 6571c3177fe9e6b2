package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/client/client"
	"github.com/dmitrijs2005/nftmarket/internal/client/config"
	"github.com/dmitrijs2005/nftmarket/internal/client/services"
	"github.com/dmitrijs2005/nftmarket/internal/client/view"
	"github.com/dmitrijs2005/nftmarket/internal/contentstore"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	create  services.CreateService
	gallery services.GalleryService
	market  services.MarketService
	remote  services.RemoteService
	gateway pinger
	reader  *bufio.Reader
	out     io.Writer

	draft models.ListingDraft
	// cards are the market cards last shown, keyed by item id.
	cards map[uint64]view.Card

	mu   sync.RWMutex
	mode Mode

	closers []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	a := &App{
		config: c,
		logger: logging.New(os.Stderr, "text", c.LogLevel),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		cards:  make(map[uint64]view.Card),
	}

	if err := a.wire(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	c := a.config

	repos, err := client.InitDatabase(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	a.closers = append(a.closers, repos.Close)

	store, err := newContentStore(ctx, c)
	if err != nil {
		return err
	}

	addrs, err := chain.ParseAddresses(c.TokenAddress, c.MarketAddress)
	if err != nil {
		return fmt.Errorf("contract addresses: %w", err)
	}

	rpcURL, err := c.RPCEndpoint()
	if err != nil {
		return err
	}

	wallet := chain.NewWallet(c.KeystorePath, c.PrivateKey, a.passphrase)
	sessions := services.ChainSessions(chain.NewConnector(rpcURL, addrs, wallet, a.logger))

	gw, err := client.NewGalleryClient(c.GatewayAddr)
	if err != nil {
		return fmt.Errorf("gateway client: %w", err)
	}
	a.closers = append(a.closers, gw.Close)

	a.create = services.NewCreateService(store, sessions, repos.Listings, a.logger)
	a.gallery = services.NewGalleryService(sessions, contentstore.NewFetcher(c.FetchTimeout), a.logger)
	a.market = services.NewMarketService(sessions, a.logger)
	a.remote = services.NewRemoteService(gw, sessions)
	a.gateway = gw

	return nil
}

func newContentStore(ctx context.Context, c *config.Config) (contentstore.Store, error) {
	switch c.ContentStore {
	case config.StoreIPFS, "":
		return contentstore.NewIPFSStore(contentstore.IPFSConfig{
			APIURL:        c.IPFSAPIURL,
			ProjectID:     c.IPFSProjectID,
			ProjectSecret: c.IPFSProjectSecret,
			GatewayURL:    c.GatewayURL,
			Timeout:       c.UploadTimeout,
		}), nil
	case config.StoreS3:
		return contentstore.NewS3Store(ctx, contentstore.S3Config{
			Bucket:     c.S3Bucket,
			Region:     c.S3Region,
			Endpoint:   c.S3Endpoint,
			AccessKey:  c.S3AccessKey,
			SecretKey:  c.S3SecretKey,
			GatewayURL: c.GatewayURL,
		})
	default:
		return nil, fmt.Errorf("unknown content store %q", c.ContentStore)
	}
}

// Close releases the journal database and the gateway connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "gallery gateway is "+string(mode))
	}
}

// StartOnlineStatusWatcher pings the gallery gateway every interval and
// tracks whether the remote commands can be served.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.gateway.Ping(pctx)
		cancel()

		if err != nil {
			a.setMode(ctx, ModeOffline)
		} else {
			a.setMode(ctx, ModeOnline)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
