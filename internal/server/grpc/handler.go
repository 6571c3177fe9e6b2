package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/nftmarket/internal/chain"
	"github.com/dmitrijs2005/nftmarket/internal/common"
	pb "github.com/dmitrijs2005/nftmarket/internal/gallerypb"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/dmitrijs2005/nftmarket/internal/server/auth"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetChallenge(ctx context.Context, req *pb.ChallengeRequest) (*pb.ChallengeResponse, error) {
	if !ethcommon.IsHexAddress(req.Address) {
		return nil, status.Error(codes.InvalidArgument, "invalid address")
	}

	c, err := s.challenges.Issue(req.Address)
	if err != nil {
		s.logger.Error(ctx, "error issuing challenge", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.ChallengeResponse{Challenge: c}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	if !ethcommon.IsHexAddress(req.Address) {
		return nil, status.Error(codes.InvalidArgument, "invalid address")
	}

	challenge, ok := s.challenges.Peek(req.Address)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no outstanding challenge")
	}

	signer, err := chain.RecoverText([]byte(common.LoginMessagePrefix+challenge), req.Signature)
	if err != nil || !strings.EqualFold(signer, req.Address) {
		s.logger.Warn(ctx, "login rejected", "address", req.Address)
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	// a concurrent login may have used the same signature first
	if !s.challenges.Consume(req.Address, challenge) {
		return nil, status.Error(codes.Unauthenticated, "no outstanding challenge")
	}

	account := ethcommon.HexToAddress(req.Address).Hex()

	token, err := auth.GenerateToken(account, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "error generating token", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Signed in", "account", account)
	return &pb.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) GetGallery(ctx context.Context, req *pb.GalleryRequest) (*pb.GalleryResponse, error) {
	account, ok := accountFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	g, err := s.loader.Created(ctx, s.sources(ethcommon.HexToAddress(account)))
	if err != nil {
		s.logger.Error(ctx, "error loading gallery", "account", account, "error", err)
		return nil, status.Error(codes.Internal, "gallery load failed")
	}

	return &pb.GalleryResponse{Items: itemsToPB(g.Items), Sold: itemsToPB(g.Sold)}, nil
}

func (s *GRPCServer) GetMarket(ctx context.Context, req *pb.MarketRequest) (*pb.MarketResponse, error) {
	items, err := s.loader.Market(ctx, s.sources(ethcommon.Address{}))
	if err != nil {
		s.logger.Error(ctx, "error loading market", "error", err)
		return nil, status.Error(codes.Internal, "market load failed")
	}

	return &pb.MarketResponse{Items: itemsToPB(items)}, nil
}

func itemsToPB(items []models.MarketItem) []*pb.Item {
	out := make([]*pb.Item, 0, len(items))
	for _, i := range items {
		out = append(out, &pb.Item{
			ItemId:      i.ItemID,
			TokenId:     i.TokenID,
			Seller:      i.Seller,
			Owner:       i.Owner,
			Price:       i.Price,
			Sold:        i.Sold,
			Image:       i.Image,
			Name:        i.Name,
			Description: i.Description,
		})
	}
	return out
}
