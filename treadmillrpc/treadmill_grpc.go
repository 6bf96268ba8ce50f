// Hand-maintained gRPC bindings for the Treadmill service.

package treadmillrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "treadmillrpc.Treadmill"

// TreadmillClient is the client API for the Treadmill service.
type TreadmillClient interface {
	GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
	GetStatusDetails(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusDetailsResponse, error)
	AliveSince(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AliveSinceResponse, error)
	GetCounters(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CountersResponse, error)
	Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BoolResponse, error)
	Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BoolResponse, error)
	Resume2(ctx context.Context, in *ResumeRequest, opts ...grpc.CallOption) (*ResumeResponse, error)
	SetRps(ctx context.Context, in *SetRpsRequest, opts ...grpc.CallOption) (*Empty, error)
	SetMaxOutstanding(ctx context.Context, in *SetMaxOutstandingRequest, opts ...grpc.CallOption) (*Empty, error)
	GetRate(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RateResponse, error)
	GetConfiguration(ctx context.Context, in *GetConfigurationRequest, opts ...grpc.CallOption) (*GetConfigurationResponse, error)
	SetConfiguration(ctx context.Context, in *SetConfigurationRequest, opts ...grpc.CallOption) (*Empty, error)
}

type treadmillClient struct {
	cc grpc.ClientConnInterface
}

// NewTreadmillClient returns a TreadmillClient which always calls with the Treadmill codec
func NewTreadmillClient(cc grpc.ClientConnInterface) TreadmillClient {
	return &treadmillClient{cc}
}

func (c *treadmillClient) GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/GetStatus", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) GetStatusDetails(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusDetailsResponse, error) {
	out := new(StatusDetailsResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/GetStatusDetails", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) AliveSince(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AliveSinceResponse, error) {
	out := new(AliveSinceResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/AliveSince", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) GetCounters(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CountersResponse, error) {
	out := new(CountersResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/GetCounters", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BoolResponse, error) {
	out := new(BoolResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/Pause", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BoolResponse, error) {
	out := new(BoolResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/Resume", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) Resume2(ctx context.Context, in *ResumeRequest, opts ...grpc.CallOption) (*ResumeResponse, error) {
	out := new(ResumeResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/Resume2", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) SetRps(ctx context.Context, in *SetRpsRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/SetRps", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) SetMaxOutstanding(ctx context.Context, in *SetMaxOutstandingRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/SetMaxOutstanding", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) GetRate(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RateResponse, error) {
	out := new(RateResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/GetRate", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) GetConfiguration(ctx context.Context, in *GetConfigurationRequest, opts ...grpc.CallOption) (*GetConfigurationResponse, error) {
	out := new(GetConfigurationResponse)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/GetConfiguration", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *treadmillClient) SetConfiguration(ctx context.Context, in *SetConfigurationRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, "/treadmillrpc.Treadmill/SetConfiguration", in, out, append([]grpc.CallOption{CallOption()}, opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TreadmillServer is the server API for the Treadmill service.
// All implementations must embed UnimplementedTreadmillServer for forward compatibility
type TreadmillServer interface {
	// GetStatus returns the current service status
	GetStatus(context.Context, *Empty) (*StatusResponse, error)
	// GetStatusDetails returns the name of the current service status
	GetStatusDetails(context.Context, *Empty) (*StatusDetailsResponse, error)
	// AliveSince returns the unix time at which the service was constructed
	AliveSince(context.Context, *Empty) (*AliveSinceResponse, error)
	// GetCounters returns the aggregated service counters
	GetCounters(context.Context, *Empty) (*CountersResponse, error)
	// Pause pauses the scheduler and clears the configuration
	Pause(context.Context, *Empty) (*BoolResponse, error)
	// Resume resumes the scheduler
	Resume(context.Context, *Empty) (*BoolResponse, error)
	// Resume2 sets the scheduler phase and resumes it
	Resume2(context.Context, *ResumeRequest) (*ResumeResponse, error)
	// SetRps sets the target requests per second
	SetRps(context.Context, *SetRpsRequest) (*Empty, error)
	// SetMaxOutstanding sets the maximum number of outstanding requests
	SetMaxOutstanding(context.Context, *SetMaxOutstandingRequest) (*Empty, error)
	// GetRate returns the scheduler running state and rate limits
	GetRate(context.Context, *Empty) (*RateResponse, error)
	// GetConfiguration returns a configuration value or an empty string
	GetConfiguration(context.Context, *GetConfigurationRequest) (*GetConfigurationResponse, error)
	// SetConfiguration stores a configuration value
	SetConfiguration(context.Context, *SetConfigurationRequest) (*Empty, error)
	mustEmbedUnimplementedTreadmillServer()
}

// UnimplementedTreadmillServer must be embedded to have forward compatible implementations.
type UnimplementedTreadmillServer struct{}

func (UnimplementedTreadmillServer) GetStatus(context.Context, *Empty) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatus not implemented")
}
func (UnimplementedTreadmillServer) GetStatusDetails(context.Context, *Empty) (*StatusDetailsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatusDetails not implemented")
}
func (UnimplementedTreadmillServer) AliveSince(context.Context, *Empty) (*AliveSinceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AliveSince not implemented")
}
func (UnimplementedTreadmillServer) GetCounters(context.Context, *Empty) (*CountersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCounters not implemented")
}
func (UnimplementedTreadmillServer) Pause(context.Context, *Empty) (*BoolResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Pause not implemented")
}
func (UnimplementedTreadmillServer) Resume(context.Context, *Empty) (*BoolResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Resume not implemented")
}
func (UnimplementedTreadmillServer) Resume2(context.Context, *ResumeRequest) (*ResumeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Resume2 not implemented")
}
func (UnimplementedTreadmillServer) SetRps(context.Context, *SetRpsRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetRps not implemented")
}
func (UnimplementedTreadmillServer) SetMaxOutstanding(context.Context, *SetMaxOutstandingRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetMaxOutstanding not implemented")
}
func (UnimplementedTreadmillServer) GetRate(context.Context, *Empty) (*RateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRate not implemented")
}
func (UnimplementedTreadmillServer) GetConfiguration(context.Context, *GetConfigurationRequest) (*GetConfigurationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetConfiguration not implemented")
}
func (UnimplementedTreadmillServer) SetConfiguration(context.Context, *SetConfigurationRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetConfiguration not implemented")
}
func (UnimplementedTreadmillServer) mustEmbedUnimplementedTreadmillServer() {}

// RegisterTreadmillServer registers the Treadmill service with a gRPC server
func RegisterTreadmillServer(s grpc.ServiceRegistrar, srv TreadmillServer) {
	s.RegisterService(&Treadmill_ServiceDesc, srv)
}

func _Treadmill_GetStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/GetStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).GetStatus(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_GetStatusDetails_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).GetStatusDetails(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/GetStatusDetails",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).GetStatusDetails(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_AliveSince_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).AliveSince(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/AliveSince",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).AliveSince(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_GetCounters_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).GetCounters(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/GetCounters",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).GetCounters(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_Pause_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).Pause(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/Pause",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).Pause(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_Resume_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).Resume(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/Resume",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).Resume(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_Resume2_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResumeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).Resume2(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/Resume2",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).Resume2(ctx, req.(*ResumeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_SetRps_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetRpsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).SetRps(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/SetRps",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).SetRps(ctx, req.(*SetRpsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_SetMaxOutstanding_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetMaxOutstandingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).SetMaxOutstanding(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/SetMaxOutstanding",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).SetMaxOutstanding(ctx, req.(*SetMaxOutstandingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_GetRate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).GetRate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/GetRate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).GetRate(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_GetConfiguration_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetConfigurationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).GetConfiguration(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/GetConfiguration",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).GetConfiguration(ctx, req.(*GetConfigurationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Treadmill_SetConfiguration_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetConfigurationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TreadmillServer).SetConfiguration(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/treadmillrpc.Treadmill/SetConfiguration",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TreadmillServer).SetConfiguration(ctx, req.(*SetConfigurationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Treadmill_ServiceDesc is the grpc.ServiceDesc for the Treadmill service.
var Treadmill_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TreadmillServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStatus",
			Handler:    _Treadmill_GetStatus_Handler,
		},
		{
			MethodName: "GetStatusDetails",
			Handler:    _Treadmill_GetStatusDetails_Handler,
		},
		{
			MethodName: "AliveSince",
			Handler:    _Treadmill_AliveSince_Handler,
		},
		{
			MethodName: "GetCounters",
			Handler:    _Treadmill_GetCounters_Handler,
		},
		{
			MethodName: "Pause",
			Handler:    _Treadmill_Pause_Handler,
		},
		{
			MethodName: "Resume",
			Handler:    _Treadmill_Resume_Handler,
		},
		{
			MethodName: "Resume2",
			Handler:    _Treadmill_Resume2_Handler,
		},
		{
			MethodName: "SetRps",
			Handler:    _Treadmill_SetRps_Handler,
		},
		{
			MethodName: "SetMaxOutstanding",
			Handler:    _Treadmill_SetMaxOutstanding_Handler,
		},
		{
			MethodName: "GetRate",
			Handler:    _Treadmill_GetRate_Handler,
		},
		{
			MethodName: "GetConfiguration",
			Handler:    _Treadmill_GetConfiguration_Handler,
		},
		{
			MethodName: "SetConfiguration",
			Handler:    _Treadmill_SetConfiguration_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "treadmill.proto",
}
