package gallerypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "nftmarket.gallery.GalleryService"

const (
	GalleryService_Ping_FullMethodName         = "/" + ServiceName + "/Ping"
	GalleryService_GetChallenge_FullMethodName = "/" + ServiceName + "/GetChallenge"
	GalleryService_Login_FullMethodName        = "/" + ServiceName + "/Login"
	GalleryService_GetGallery_FullMethodName   = "/" + ServiceName + "/GetGallery"
	GalleryService_GetMarket_FullMethodName    = "/" + ServiceName + "/GetMarket"
)

// GalleryServiceServer is the server API for the gallery gateway.
type GalleryServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetChallenge(context.Context, *ChallengeRequest) (*ChallengeResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetGallery(context.Context, *GalleryRequest) (*GalleryResponse, error)
	GetMarket(context.Context, *MarketRequest) (*MarketResponse, error)
}

// UnimplementedGalleryServiceServer may be embedded to have forward
// compatible implementations.
type UnimplementedGalleryServiceServer struct{}

func (UnimplementedGalleryServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedGalleryServiceServer) GetChallenge(context.Context, *ChallengeRequest) (*ChallengeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetChallenge not implemented")
}
func (UnimplementedGalleryServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedGalleryServiceServer) GetGallery(context.Context, *GalleryRequest) (*GalleryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGallery not implemented")
}
func (UnimplementedGalleryServiceServer) GetMarket(context.Context, *MarketRequest) (*MarketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMarket not implemented")
}

func RegisterGalleryServiceServer(s grpc.ServiceRegistrar, srv GalleryServiceServer) {
	s.RegisterService(&GalleryService_ServiceDesc, srv)
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(GalleryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GalleryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GalleryServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var GalleryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GalleryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(GalleryService_Ping_FullMethodName, GalleryServiceServer.Ping)},
		{MethodName: "GetChallenge", Handler: unary(GalleryService_GetChallenge_FullMethodName, GalleryServiceServer.GetChallenge)},
		{MethodName: "Login", Handler: unary(GalleryService_Login_FullMethodName, GalleryServiceServer.Login)},
		{MethodName: "GetGallery", Handler: unary(GalleryService_GetGallery_FullMethodName, GalleryServiceServer.GetGallery)},
		{MethodName: "GetMarket", Handler: unary(GalleryService_GetMarket_FullMethodName, GalleryServiceServer.GetMarket)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gallery.json",
}

// GalleryServiceClient is the client API for the gallery gateway.
type GalleryServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetChallenge(ctx context.Context, in *ChallengeRequest, opts ...grpc.CallOption) (*ChallengeResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	GetGallery(ctx context.Context, in *GalleryRequest, opts ...grpc.CallOption) (*GalleryResponse, error)
	GetMarket(ctx context.Context, in *MarketRequest, opts ...grpc.CallOption) (*MarketResponse, error)
}

type galleryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGalleryServiceClient(cc grpc.ClientConnInterface) GalleryServiceClient {
	return &galleryServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *galleryServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, GalleryService_Ping_FullMethodName, in, opts)
}

func (c *galleryServiceClient) GetChallenge(ctx context.Context, in *ChallengeRequest, opts ...grpc.CallOption) (*ChallengeResponse, error) {
	return invoke[ChallengeResponse](ctx, c.cc, GalleryService_GetChallenge_FullMethodName, in, opts)
}

func (c *galleryServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, GalleryService_Login_FullMethodName, in, opts)
}

func (c *galleryServiceClient) GetGallery(ctx context.Context, in *GalleryRequest, opts ...grpc.CallOption) (*GalleryResponse, error) {
	return invoke[GalleryResponse](ctx, c.cc, GalleryService_GetGallery_FullMethodName, in, opts)
}

func (c *galleryServiceClient) GetMarket(ctx context.Context, in *MarketRequest, opts ...grpc.CallOption) (*MarketResponse, error) {
	return invoke[MarketResponse](ctx, c.cc, GalleryService_GetMarket_FullMethodName, in, opts)
}
