package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nftmarket/internal/common"
	pb "github.com/dmitrijs2005/nftmarket/internal/gallerypb"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.GalleryServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	// an expired token cannot be refreshed; drop it so the next call signs in again
	if status.Code(err) == codes.Unauthenticated {
		s.mu.Lock()
		s.accessToken = ""
		s.mu.Unlock()
	}

	return err
}

// NewGalleryClient creates a client for the gateway at endpointURL. The
// connection is established lazily on the first call.
func NewGalleryClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewGalleryServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Challenge(ctx context.Context, address string) (string, error) {
	resp, err := s.client.GetChallenge(ctx, &pb.ChallengeRequest{Address: address})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Challenge, nil
}

// Login exchanges a signed challenge for an access token that is attached
// to every following call.
func (s *GRPCClient) Login(ctx context.Context, address string, signature []byte) error {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Address: address, Signature: signature})
	if err != nil {
		return s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.mu.Unlock()

	return nil
}

func (s *GRPCClient) Gallery(ctx context.Context) (*models.Gallery, error) {
	resp, err := s.client.GetGallery(ctx, &pb.GalleryRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return models.NewGallery(itemsFromPB(resp.Items)), nil
}

func (s *GRPCClient) Market(ctx context.Context) ([]models.MarketItem, error) {
	resp, err := s.client.GetMarket(ctx, &pb.MarketRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return itemsFromPB(resp.Items), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func itemsFromPB(in []*pb.Item) []models.MarketItem {
	out := make([]models.MarketItem, 0, len(in))
	for _, i := range in {
		if i == nil {
			continue
		}
		out = append(out, models.MarketItem{
			ItemID:      i.ItemId,
			TokenID:     i.TokenId,
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
