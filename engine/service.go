// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Fully qualified service names.
const (
	BTreeService        = "collections.BTree"
	RedBlackTreeService = "collections.RedBlackTree"
	CompactListService  = "collections.CompactList"
)

// OrderedSetServer is the server API for the BTree and RedBlackTree
// services.
type OrderedSetServer interface {
	// Insert adds a key.
	Insert(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error)
	// Read reports whether a key is present.
	Read(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	// Delete removes one occurrence of a key.
	Delete(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error)
	// Len returns the number of keys.
	Len(context.Context, *empty.Empty) (*wrapperspb.Int64Value, error)
	// Reset removes all keys.
	Reset(context.Context, *empty.Empty) (*empty.Empty, error)
}

// CompactListServer is the server API for the CompactList service.
type CompactListServer interface {
	// Insert places a value at a position, given as the integer fields
	// "value" and "position".  Without a position the value is appended.
	// Integers of magnitude 2^53 or more are sent as decimal strings.
	Insert(context.Context, *structpb.Struct) (*empty.Empty, error)
	// Read returns the value at a position.
	Read(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error)
	// Delete removes and returns the value at a position.
	Delete(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error)
	// Len returns the number of values.
	Len(context.Context, *empty.Empty) (*wrapperspb.Int64Value, error)
	// Reset removes all values.
	Reset(context.Context, *empty.Empty) (*empty.Empty, error)
}

// UnimplementedOrderedSetServer must be embedded to have forward compatible
// implementations.
type UnimplementedOrderedSetServer struct {
}

func (UnimplementedOrderedSetServer) Insert(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedOrderedSetServer) Read(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Read not implemented")
}
func (UnimplementedOrderedSetServer) Delete(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedOrderedSetServer) Len(context.Context, *empty.Empty) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Len not implemented")
}
func (UnimplementedOrderedSetServer) Reset(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reset not implemented")
}

// UnimplementedCompactListServer must be embedded to have forward compatible
// implementations.
type UnimplementedCompactListServer struct {
}

func (UnimplementedCompactListServer) Insert(context.Context, *structpb.Struct) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedCompactListServer) Read(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Read not implemented")
}
func (UnimplementedCompactListServer) Delete(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedCompactListServer) Len(context.Context, *empty.Empty) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Len not implemented")
}
func (UnimplementedCompactListServer) Reset(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reset not implemented")
}

// unary builds the descriptor of a unary method whose handler decodes a
// request of type Req and calls the given method of the server S.
func unary[S any, Req, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func orderedSetServiceDesc(service string) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: service,
		HandlerType: (*OrderedSetServer)(nil),
		Methods: []grpc.MethodDesc{
			unary(service, "Insert", OrderedSetServer.Insert),
			unary(service, "Read", OrderedSetServer.Read),
			unary(service, "Delete", OrderedSetServer.Delete),
			unary(service, "Len", OrderedSetServer.Len),
			unary(service, "Reset", OrderedSetServer.Reset),
		},
		Streams: []grpc.StreamDesc{},
	}
}

// BTree_ServiceDesc is the grpc.ServiceDesc for the BTree service.
var BTree_ServiceDesc = orderedSetServiceDesc(BTreeService)

// RedBlackTree_ServiceDesc is the grpc.ServiceDesc for the RedBlackTree
// service.
var RedBlackTree_ServiceDesc = orderedSetServiceDesc(RedBlackTreeService)

// CompactList_ServiceDesc is the grpc.ServiceDesc for the CompactList
// service.
var CompactList_ServiceDesc = &grpc.ServiceDesc{
	ServiceName: CompactListService,
	HandlerType: (*CompactListServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CompactListService, "Insert", CompactListServer.Insert),
		unary(CompactListService, "Read", CompactListServer.Read),
		unary(CompactListService, "Delete", CompactListServer.Delete),
		unary(CompactListService, "Len", CompactListServer.Len),
		unary(CompactListService, "Reset", CompactListServer.Reset),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterBTreeServer(s grpc.ServiceRegistrar, srv OrderedSetServer) {
	s.RegisterService(BTree_ServiceDesc, srv)
}

func RegisterRedBlackTreeServer(s grpc.ServiceRegistrar, srv OrderedSetServer) {
	s.RegisterService(RedBlackTree_ServiceDesc, srv)
}

func RegisterCompactListServer(s grpc.ServiceRegistrar, srv CompactListServer) {
	s.RegisterService(CompactList_ServiceDesc, srv)
}

// OrderedSetClient is the client API for the BTree and RedBlackTree
// services.
type OrderedSetClient interface {
	Insert(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error)
	Read(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error)
	Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
}

type orderedSetClient struct {
	cc      grpc.ClientConnInterface
	service string
}

// NewBTreeClient creates a client of the BTree service.
func NewBTreeClient(cc grpc.ClientConnInterface) OrderedSetClient {
	return &orderedSetClient{cc: cc, service: BTreeService}
}

// NewRedBlackTreeClient creates a client of the RedBlackTree service.
func NewRedBlackTreeClient(cc grpc.ClientConnInterface) OrderedSetClient {
	return &orderedSetClient{cc: cc, service: RedBlackTreeService}
}

func (c *orderedSetClient) method(name string) string {
	return "/" + c.service + "/" + name
}

func (c *orderedSetClient) Insert(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, c.method("Insert"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderedSetClient) Read(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, c.method("Read"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderedSetClient) Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, c.method("Delete"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderedSetClient) Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, c.method("Len"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderedSetClient) Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, c.method("Reset"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CompactListClient is the client API for the CompactList service.
type CompactListClient interface {
	Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error)
	Read(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
}

type compactListClient struct {
	cc grpc.ClientConnInterface
}

// NewCompactListClient creates a client of the CompactList service.
func NewCompactListClient(cc grpc.ClientConnInterface) CompactListClient {
	return &compactListClient{cc}
}

func (c *compactListClient) Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/collections.CompactList/Insert", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compactListClient) Read(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, "/collections.CompactList/Read", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compactListClient) Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, "/collections.CompactList/Delete", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compactListClient) Len(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, "/collections.CompactList/Len", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *compactListClient) Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/collections.CompactList/Reset", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
