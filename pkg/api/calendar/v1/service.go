package calendarv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Полные имена методов CalendarService.
const (
	CalendarService_CreateCalendar_FullMethodName = "/calendar.v1.CalendarService/CreateCalendar"
	CalendarService_GetCalendar_FullMethodName    = "/calendar.v1.CalendarService/GetCalendar"
)

// CalendarServiceServer - серверный API CalendarService.
type CalendarServiceServer interface {
	CreateCalendar(context.Context, *CreateCalendarRequest) (*CreateCalendarResponse, error)
	GetCalendar(context.Context, *GetCalendarRequest) (*GetCalendarResponse, error)
}

// UnimplementedCalendarServiceServer встраивается в реализации для совместимости.
type UnimplementedCalendarServiceServer struct{}

// CreateCalendar не реализован.
func (UnimplementedCalendarServiceServer) CreateCalendar(context.Context, *CreateCalendarRequest) (*CreateCalendarResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCalendar not implemented")
}

// GetCalendar не реализован.
func (UnimplementedCalendarServiceServer) GetCalendar(context.Context, *GetCalendarRequest) (*GetCalendarResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCalendar not implemented")
}

// RegisterCalendarServiceServer регистрирует CalendarService на gRPC сервере.
func RegisterCalendarServiceServer(s grpc.ServiceRegistrar, srv CalendarServiceServer) {
	s.RegisterService(&CalendarService_ServiceDesc, srv)
}

// CalendarServiceClient - клиентский API CalendarService.
type CalendarServiceClient interface {
	CreateCalendar(ctx context.Context, in *CreateCalendarRequest, opts ...grpc.CallOption) (*CreateCalendarResponse, error)
	GetCalendar(ctx context.Context, in *GetCalendarRequest, opts ...grpc.CallOption) (*GetCalendarResponse, error)
}

type calendarServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCalendarServiceClient создает клиента поверх соединения.
func NewCalendarServiceClient(cc grpc.ClientConnInterface) CalendarServiceClient {
	return &calendarServiceClient{cc: cc}
}

func (c *calendarServiceClient) CreateCalendar(ctx context.Context, in *CreateCalendarRequest, opts ...grpc.CallOption) (*CreateCalendarResponse, error) {
	out := dynamicpb.NewMessage(createCalendarResponseDesc)
	if err := c.cc.Invoke(ctx, CalendarService_CreateCalendar_FullMethodName, in.ToMessage(), out, opts...); err != nil {
		return nil, err
	}
	return CreateCalendarResponseFromMessage(out)
}

func (c *calendarServiceClient) GetCalendar(ctx context.Context, in *GetCalendarRequest, opts ...grpc.CallOption) (*GetCalendarResponse, error) {
	out := dynamicpb.NewMessage(getCalendarResponseDesc)
	if err := c.cc.Invoke(ctx, CalendarService_GetCalendar_FullMethodName, in.ToMessage(), out, opts...); err != nil {
		return nil, err
	}
	return GetCalendarResponseFromMessage(out)
}

func _CalendarService_CreateCalendar_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(createCalendarRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	req, err := CreateCalendarRequestFromMessage(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	handler := func(ctx context.Context, req any) (any, error) {
		resp, err := srv.(CalendarServiceServer).CreateCalendar(ctx, req.(*CreateCalendarRequest))
		if err != nil {
			return nil, err
		}
		return resp.ToMessage(), nil
	}
	if interceptor == nil {
		return handler(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CalendarService_CreateCalendar_FullMethodName}
	return interceptor(ctx, req, info, handler)
}

func _CalendarService_GetCalendar_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(getCalendarRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	req, err := GetCalendarRequestFromMessage(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	handler := func(ctx context.Context, req any) (any, error) {
		resp, err := srv.(CalendarServiceServer).GetCalendar(ctx, req.(*GetCalendarRequest))
		if err != nil {
			return nil, err
		}
		return resp.ToMessage(), nil
	}
	if interceptor == nil {
		return handler(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CalendarService_GetCalendar_FullMethodName}
	return interceptor(ctx, req, info, handler)
}

// CalendarService_ServiceDesc - grpc.ServiceDesc для CalendarService.
var CalendarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: string(CalendarServiceName),
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateCalendar", Handler: _CalendarService_CreateCalendar_Handler},
		{MethodName: "GetCalendar", Handler: _CalendarService_GetCalendar_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}
