package skillswapv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	SkillSwapService_Register_FullMethodName            = "/skillswap.v1.SkillSwapService/Register"
	SkillSwapService_Login_FullMethodName               = "/skillswap.v1.SkillSwapService/Login"
	SkillSwapService_GetProfile_FullMethodName          = "/skillswap.v1.SkillSwapService/GetProfile"
	SkillSwapService_UpdateProfile_FullMethodName       = "/skillswap.v1.SkillSwapService/UpdateProfile"
	SkillSwapService_AddSkill_FullMethodName            = "/skillswap.v1.SkillSwapService/AddSkill"
	SkillSwapService_RemoveSkill_FullMethodName         = "/skillswap.v1.SkillSwapService/RemoveSkill"
	SkillSwapService_SearchBySkill_FullMethodName       = "/skillswap.v1.SkillSwapService/SearchBySkill"
	SkillSwapService_ListMatches_FullMethodName         = "/skillswap.v1.SkillSwapService/ListMatches"
	SkillSwapService_ProposeSession_FullMethodName      = "/skillswap.v1.SkillSwapService/ProposeSession"
	SkillSwapService_RespondToSession_FullMethodName    = "/skillswap.v1.SkillSwapService/RespondToSession"
	SkillSwapService_CancelSession_FullMethodName       = "/skillswap.v1.SkillSwapService/CancelSession"
	SkillSwapService_CompleteSession_FullMethodName     = "/skillswap.v1.SkillSwapService/CompleteSession"
	SkillSwapService_GetSession_FullMethodName          = "/skillswap.v1.SkillSwapService/GetSession"
	SkillSwapService_ListSessions_FullMethodName        = "/skillswap.v1.SkillSwapService/ListSessions"
	SkillSwapService_SubmitRating_FullMethodName        = "/skillswap.v1.SkillSwapService/SubmitRating"
	SkillSwapService_GetUserRatings_FullMethodName      = "/skillswap.v1.SkillSwapService/GetUserRatings"
	SkillSwapService_RecomputeUserRating_FullMethodName = "/skillswap.v1.SkillSwapService/RecomputeUserRating"
	SkillSwapService_SendMessage_FullMethodName         = "/skillswap.v1.SkillSwapService/SendMessage"
	SkillSwapService_GetChatHistory_FullMethodName      = "/skillswap.v1.SkillSwapService/GetChatHistory"
	SkillSwapService_ListChats_FullMethodName           = "/skillswap.v1.SkillSwapService/ListChats"
	SkillSwapService_MarkChatRead_FullMethodName        = "/skillswap.v1.SkillSwapService/MarkChatRead"
)

// SkillSwapServiceServer is the server API for SkillSwapService.
// Implementations must embed UnimplementedSkillSwapServiceServer.
type SkillSwapServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)

	GetProfile(context.Context, *GetProfileRequest) (*Profile, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error)
	AddSkill(context.Context, *AddSkillRequest) (*Profile, error)
	RemoveSkill(context.Context, *RemoveSkillRequest) (*Profile, error)
	SearchBySkill(context.Context, *SearchBySkillRequest) (*SearchBySkillResponse, error)
	ListMatches(context.Context, *emptypb.Empty) (*ListMatchesResponse, error)

	ProposeSession(context.Context, *ProposeSessionRequest) (*Session, error)
	RespondToSession(context.Context, *RespondToSessionRequest) (*Session, error)
	CancelSession(context.Context, *SessionRequest) (*Session, error)
	CompleteSession(context.Context, *SessionRequest) (*Session, error)
	GetSession(context.Context, *SessionRequest) (*Session, error)
	ListSessions(context.Context, *ListSessionsRequest) (*ListSessionsResponse, error)

	SubmitRating(context.Context, *SubmitRatingRequest) (*SubmitRatingResponse, error)
	GetUserRatings(context.Context, *GetUserRatingsRequest) (*GetUserRatingsResponse, error)
	RecomputeUserRating(context.Context, *GetUserRatingsRequest) (*Profile, error)

	SendMessage(context.Context, *SendMessageRequest) (*ChatMessage, error)
	GetChatHistory(*GetChatHistoryRequest, grpc.ServerStreamingServer[ChatMessage]) error
	ListChats(*ListChatsRequest, grpc.ServerStreamingServer[ChatSummary]) error
	MarkChatRead(context.Context, *MarkChatReadRequest) (*MarkChatReadResponse, error)

	mustEmbedUnimplementedSkillSwapServiceServer()
}

// UnimplementedSkillSwapServiceServer must be embedded to have forward
// compatible implementations.
type UnimplementedSkillSwapServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedSkillSwapServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedSkillSwapServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedSkillSwapServiceServer) GetProfile(context.Context, *GetProfileRequest) (*Profile, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedSkillSwapServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*Profile, error) {
	return nil, unimplemented("UpdateProfile")
}
func (UnimplementedSkillSwapServiceServer) AddSkill(context.Context, *AddSkillRequest) (*Profile, error) {
	return nil, unimplemented("AddSkill")
}
func (UnimplementedSkillSwapServiceServer) RemoveSkill(context.Context, *RemoveSkillRequest) (*Profile, error) {
	return nil, unimplemented("RemoveSkill")
}
func (UnimplementedSkillSwapServiceServer) SearchBySkill(context.Context, *SearchBySkillRequest) (*SearchBySkillResponse, error) {
	return nil, unimplemented("SearchBySkill")
}
func (UnimplementedSkillSwapServiceServer) ListMatches(context.Context, *emptypb.Empty) (*ListMatchesResponse, error) {
	return nil, unimplemented("ListMatches")
}
func (UnimplementedSkillSwapServiceServer) ProposeSession(context.Context, *ProposeSessionRequest) (*Session, error) {
	return nil, unimplemented("ProposeSession")
}
func (UnimplementedSkillSwapServiceServer) RespondToSession(context.Context, *RespondToSessionRequest) (*Session, error) {
	return nil, unimplemented("RespondToSession")
}
func (UnimplementedSkillSwapServiceServer) CancelSession(context.Context, *SessionRequest) (*Session, error) {
	return nil, unimplemented("CancelSession")
}
func (UnimplementedSkillSwapServiceServer) CompleteSession(context.Context, *SessionRequest) (*Session, error) {
	return nil, unimplemented("CompleteSession")
}
func (UnimplementedSkillSwapServiceServer) GetSession(context.Context, *SessionRequest) (*Session, error) {
	return nil, unimplemented("GetSession")
}
func (UnimplementedSkillSwapServiceServer) ListSessions(context.Context, *ListSessionsRequest) (*ListSessionsResponse, error) {
	return nil, unimplemented("ListSessions")
}
func (UnimplementedSkillSwapServiceServer) SubmitRating(context.Context, *SubmitRatingRequest) (*SubmitRatingResponse, error) {
	return nil, unimplemented("SubmitRating")
}
func (UnimplementedSkillSwapServiceServer) GetUserRatings(context.Context, *GetUserRatingsRequest) (*GetUserRatingsResponse, error) {
	return nil, unimplemented("GetUserRatings")
}
func (UnimplementedSkillSwapServiceServer) RecomputeUserRating(context.Context, *GetUserRatingsRequest) (*Profile, error) {
	return nil, unimplemented("RecomputeUserRating")
}
func (UnimplementedSkillSwapServiceServer) SendMessage(context.Context, *SendMessageRequest) (*ChatMessage, error) {
	return nil, unimplemented("SendMessage")
}
func (UnimplementedSkillSwapServiceServer) GetChatHistory(*GetChatHistoryRequest, grpc.ServerStreamingServer[ChatMessage]) error {
	return unimplemented("GetChatHistory")
}
func (UnimplementedSkillSwapServiceServer) ListChats(*ListChatsRequest, grpc.ServerStreamingServer[ChatSummary]) error {
	return unimplemented("ListChats")
}
func (UnimplementedSkillSwapServiceServer) MarkChatRead(context.Context, *MarkChatReadRequest) (*MarkChatReadResponse, error) {
	return nil, unimplemented("MarkChatRead")
}
func (UnimplementedSkillSwapServiceServer) mustEmbedUnimplementedSkillSwapServiceServer() {}

// RegisterSkillSwapServiceServer registers srv on s.
func RegisterSkillSwapServiceServer(s grpc.ServiceRegistrar, srv SkillSwapServiceServer) {
	s.RegisterService(&SkillSwapService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a grpc.MethodHandler.
func unaryHandler[Req, Resp any](method string, call func(SkillSwapServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SkillSwapServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SkillSwapServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// serverStreamHandler adapts a typed server-streaming method to a
// grpc.StreamHandler.
func serverStreamHandler[Req, Resp any](call func(SkillSwapServiceServer, *Req, grpc.ServerStreamingServer[Resp]) error) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		in := new(Req)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return call(srv.(SkillSwapServiceServer), in, &grpc.GenericServerStream[Req, Resp]{ServerStream: stream})
	}
}

// SkillSwapService_ServiceDesc is the grpc.ServiceDesc for SkillSwapService.
var SkillSwapService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "skillswap.v1.SkillSwapService",
	HandlerType: (*SkillSwapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(SkillSwapService_Register_FullMethodName, SkillSwapServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(SkillSwapService_Login_FullMethodName, SkillSwapServiceServer.Login)},
		{MethodName: "GetProfile", Handler: unaryHandler(SkillSwapService_GetProfile_FullMethodName, SkillSwapServiceServer.GetProfile)},
		{MethodName: "UpdateProfile", Handler: unaryHandler(SkillSwapService_UpdateProfile_FullMethodName, SkillSwapServiceServer.UpdateProfile)},
		{MethodName: "AddSkill", Handler: unaryHandler(SkillSwapService_AddSkill_FullMethodName, SkillSwapServiceServer.AddSkill)},
		{MethodName: "RemoveSkill", Handler: unaryHandler(SkillSwapService_RemoveSkill_FullMethodName, SkillSwapServiceServer.RemoveSkill)},
		{MethodName: "SearchBySkill", Handler: unaryHandler(SkillSwapService_SearchBySkill_FullMethodName, SkillSwapServiceServer.SearchBySkill)},
		{MethodName: "ListMatches", Handler: unaryHandler(SkillSwapService_ListMatches_FullMethodName, SkillSwapServiceServer.ListMatches)},
		{MethodName: "ProposeSession", Handler: unaryHandler(SkillSwapService_ProposeSession_FullMethodName, SkillSwapServiceServer.ProposeSession)},
		{MethodName: "RespondToSession", Handler: unaryHandler(SkillSwapService_RespondToSession_FullMethodName, SkillSwapServiceServer.RespondToSession)},
		{MethodName: "CancelSession", Handler: unaryHandler(SkillSwapService_CancelSession_FullMethodName, SkillSwapServiceServer.CancelSession)},
		{MethodName: "CompleteSession", Handler: unaryHandler(SkillSwapService_CompleteSession_FullMethodName, SkillSwapServiceServer.CompleteSession)},
		{MethodName: "GetSession", Handler: unaryHandler(SkillSwapService_GetSession_FullMethodName, SkillSwapServiceServer.GetSession)},
		{MethodName: "ListSessions", Handler: unaryHandler(SkillSwapService_ListSessions_FullMethodName, SkillSwapServiceServer.ListSessions)},
		{MethodName: "SubmitRating", Handler: unaryHandler(SkillSwapService_SubmitRating_FullMethodName, SkillSwapServiceServer.SubmitRating)},
		{MethodName: "GetUserRatings", Handler: unaryHandler(SkillSwapService_GetUserRatings_FullMethodName, SkillSwapServiceServer.GetUserRatings)},
		{MethodName: "RecomputeUserRating", Handler: unaryHandler(SkillSwapService_RecomputeUserRating_FullMethodName, SkillSwapServiceServer.RecomputeUserRating)},
		{MethodName: "SendMessage", Handler: unaryHandler(SkillSwapService_SendMessage_FullMethodName, SkillSwapServiceServer.SendMessage)},
		{MethodName: "MarkChatRead", Handler: unaryHandler(SkillSwapService_MarkChatRead_FullMethodName, SkillSwapServiceServer.MarkChatRead)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetChatHistory",
			Handler:       serverStreamHandler(SkillSwapServiceServer.GetChatHistory),
			ServerStreams: true,
		},
		{
			StreamName:    "ListChats",
			Handler:       serverStreamHandler(SkillSwapServiceServer.ListChats),
			ServerStreams: true,
		},
	},
	Metadata: "skillswap/v1/skillswap.proto",
}

// SkillSwapServiceClient is the client API for SkillSwapService. Every call
// uses the json content-subtype.
type SkillSwapServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)

	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error)
	AddSkill(ctx context.Context, in *AddSkillRequest, opts ...grpc.CallOption) (*Profile, error)
	RemoveSkill(ctx context.Context, in *RemoveSkillRequest, opts ...grpc.CallOption) (*Profile, error)
	SearchBySkill(ctx context.Context, in *SearchBySkillRequest, opts ...grpc.CallOption) (*SearchBySkillResponse, error)
	ListMatches(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListMatchesResponse, error)

	ProposeSession(ctx context.Context, in *ProposeSessionRequest, opts ...grpc.CallOption) (*Session, error)
	RespondToSession(ctx context.Context, in *RespondToSessionRequest, opts ...grpc.CallOption) (*Session, error)
	CancelSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error)
	CompleteSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error)
	GetSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error)
	ListSessions(ctx context.Context, in *ListSessionsRequest, opts ...grpc.CallOption) (*ListSessionsResponse, error)

	SubmitRating(ctx context.Context, in *SubmitRatingRequest, opts ...grpc.CallOption) (*SubmitRatingResponse, error)
	GetUserRatings(ctx context.Context, in *GetUserRatingsRequest, opts ...grpc.CallOption) (*GetUserRatingsResponse, error)
	RecomputeUserRating(ctx context.Context, in *GetUserRatingsRequest, opts ...grpc.CallOption) (*Profile, error)

	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*ChatMessage, error)
	GetChatHistory(ctx context.Context, in *GetChatHistoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatMessage], error)
	ListChats(ctx context.Context, in *ListChatsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatSummary], error)
	MarkChatRead(ctx context.Context, in *MarkChatReadRequest, opts ...grpc.CallOption) (*MarkChatReadResponse, error)
}

type skillSwapServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSkillSwapServiceClient returns a client over cc.
func NewSkillSwapServiceClient(cc grpc.ClientConnInterface) SkillSwapServiceClient {
	return &skillSwapServiceClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// invoke performs a unary call and decodes the reply into a fresh Resp.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// serverStream opens a server-streaming call and sends its only request.
func serverStream[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Resp], error) {
	stream, err := cc.NewStream(ctx, desc, method, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Resp]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *skillSwapServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, SkillSwapService_Register_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, SkillSwapService_Login_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, SkillSwapService_GetProfile_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, SkillSwapService_UpdateProfile_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) AddSkill(ctx context.Context, in *AddSkillRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, SkillSwapService_AddSkill_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) RemoveSkill(ctx context.Context, in *RemoveSkillRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, SkillSwapService_RemoveSkill_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) SearchBySkill(ctx context.Context, in *SearchBySkillRequest, opts ...grpc.CallOption) (*SearchBySkillResponse, error) {
	return invoke[SearchBySkillResponse](ctx, c.cc, SkillSwapService_SearchBySkill_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) ListMatches(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListMatchesResponse, error) {
	return invoke[ListMatchesResponse](ctx, c.cc, SkillSwapService_ListMatches_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) ProposeSession(ctx context.Context, in *ProposeSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, SkillSwapService_ProposeSession_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) RespondToSession(ctx context.Context, in *RespondToSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, SkillSwapService_RespondToSession_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) CancelSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, SkillSwapService_CancelSession_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) CompleteSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, SkillSwapService_CompleteSession_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) GetSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, SkillSwapService_GetSession_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) ListSessions(ctx context.Context, in *ListSessionsRequest, opts ...grpc.CallOption) (*ListSessionsResponse, error) {
	return invoke[ListSessionsResponse](ctx, c.cc, SkillSwapService_ListSessions_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) SubmitRating(ctx context.Context, in *SubmitRatingRequest, opts ...grpc.CallOption) (*SubmitRatingResponse, error) {
	return invoke[SubmitRatingResponse](ctx, c.cc, SkillSwapService_SubmitRating_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) GetUserRatings(ctx context.Context, in *GetUserRatingsRequest, opts ...grpc.CallOption) (*GetUserRatingsResponse, error) {
	return invoke[GetUserRatingsResponse](ctx, c.cc, SkillSwapService_GetUserRatings_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) RecomputeUserRating(ctx context.Context, in *GetUserRatingsRequest, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, SkillSwapService_RecomputeUserRating_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*ChatMessage, error) {
	return invoke[ChatMessage](ctx, c.cc, SkillSwapService_SendMessage_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) GetChatHistory(ctx context.Context, in *GetChatHistoryRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatMessage], error) {
	return serverStream[GetChatHistoryRequest, ChatMessage](ctx, c.cc, &SkillSwapService_ServiceDesc.Streams[0], SkillSwapService_GetChatHistory_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) ListChats(ctx context.Context, in *ListChatsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChatSummary], error) {
	return serverStream[ListChatsRequest, ChatSummary](ctx, c.cc, &SkillSwapService_ServiceDesc.Streams[1], SkillSwapService_ListChats_FullMethodName, in, opts)
}

func (c *skillSwapServiceClient) MarkChatRead(ctx context.Context, in *MarkChatReadRequest, opts ...grpc.CallOption) (*MarkChatReadResponse, error) {
	return invoke[MarkChatReadResponse](ctx, c.cc, SkillSwapService_MarkChatRead_FullMethodName, in, opts)
}
