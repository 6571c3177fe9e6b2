package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/gallery"
	pb "github.com/dmitrijs2005/nftmarket/internal/gallerypb"
	"github.com/dmitrijs2005/nftmarket/internal/logging"
	"github.com/dmitrijs2005/nftmarket/internal/server/auth"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc"
)

// SourceFunc returns a read-only chain source whose calls are made from
// account.
type SourceFunc func(account ethcommon.Address) gallery.Source

type GRPCServer struct {
	pb.UnimplementedGalleryServiceServer
	address    string
	logger     logging.Logger
	sources    SourceFunc
	loader     *gallery.Loader
	challenges *auth.ChallengeStore
	jwtSecret  []byte
	tokenTTL   time.Duration
}

func NewGRPCServer(a string, l logging.Logger, sources SourceFunc, loader *gallery.Loader,
	challenges *auth.ChallengeStore, secretKey string, tokenTTL time.Duration) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		sources:    sources,
		loader:     loader,
		challenges: challenges,
		jwtSecret:  []byte(secretKey),
		tokenTTL:   tokenTTL,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	pb.RegisterGalleryServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
