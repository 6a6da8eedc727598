package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "optionspark.v1.DiagramService"

const (
	methodPlanDiagram         = "PlanDiagram"
	methodRenderDiagram       = "RenderDiagram"
	methodRenderStoredDiagram = "RenderStoredDiagram"
)

// DiagramServiceServer is the server API for DiagramService
// Requests and responses are google.protobuf.Struct messages
type DiagramServiceServer interface {
	PlanDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RenderDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RenderStoredDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv DiagramServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unaryMethod builds a MethodDesc that decodes a Struct and routes it through the interceptor chain
func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DiagramServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(DiagramServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// DiagramServiceDesc describes DiagramService for grpc.Server registration
var DiagramServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiagramServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(methodPlanDiagram, DiagramServiceServer.PlanDiagram),
		unaryMethod(methodRenderDiagram, DiagramServiceServer.RenderDiagram),
		unaryMethod(methodRenderStoredDiagram, DiagramServiceServer.RenderStoredDiagram),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "optionspark/v1/diagram.proto",
}

// RegisterDiagramServiceServer registers srv on s
func RegisterDiagramServiceServer(s grpc.ServiceRegistrar, srv DiagramServiceServer) {
	s.RegisterService(&DiagramServiceDesc, srv)
}

// DiagramServiceClient calls DiagramService over a client connection
type DiagramServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDiagramServiceClient creates a client on cc
func NewDiagramServiceClient(cc grpc.ClientConnInterface) *DiagramServiceClient {
	return &DiagramServiceClient{cc: cc}
}

func (c *DiagramServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PlanDiagram returns the resolved render plan
func (c *DiagramServiceClient) PlanDiagram(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodPlanDiagram, in, opts...)
}

// RenderDiagram returns the SVG of an inline option
func (c *DiagramServiceClient) RenderDiagram(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodRenderDiagram, in, opts...)
}

// RenderStoredDiagram returns the SVG of a stored option at its live price
func (c *DiagramServiceClient) RenderStoredDiagram(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodRenderStoredDiagram, in, opts...)
}
