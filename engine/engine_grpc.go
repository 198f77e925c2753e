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
	"errors"
	"math"
	"strconv"

	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/9rum/collections/internal/collection"
)

// toStatus converts an engine error into a gRPC status error.
func toStatus(err error) error {
	switch {
	case errors.Is(err, collection.ErrKeyNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, collection.ErrPositionOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, collection.ErrEmptyCollection):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// orderedSetServer implements the server API for the BTree and RedBlackTree
// services.
type orderedSetServer struct {
	UnimplementedOrderedSetServer
	name string
	set  *Set
}

// NewBTreeServer creates a new server of a B-tree with the given minimum
// degree.
func NewBTreeServer(degree int) OrderedSetServer {
	return &orderedSetServer{
		name: BTreeService,
		set:  NewSet(BTREE, degree),
	}
}

// NewRedBlackTreeServer creates a new server of a red-black tree.
func NewRedBlackTreeServer() OrderedSetServer {
	return &orderedSetServer{
		name: RedBlackTreeService,
		set:  NewSet(REDBLACKTREE, 0),
	}
}

// Insert adds the given key to the set.
func (s *orderedSetServer) Insert(ctx context.Context, in *wrapperspb.Int64Value) (*empty.Empty, error) {
	glog.Infof("%s Insert called with key: %d", s.name, in.GetValue())

	engineLength.WithLabelValues(s.name).Set(float64(s.set.Insert(in.GetValue())))

	return new(empty.Empty), nil
}

// Read reports whether the given key is in the set.
func (s *orderedSetServer) Read(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	glog.Infof("%s Read called with key: %d", s.name, in.GetValue())

	return wrapperspb.Bool(s.set.Read(in.GetValue())), nil
}

// Delete removes one occurrence of the given key from the set.
func (s *orderedSetServer) Delete(ctx context.Context, in *wrapperspb.Int64Value) (*empty.Empty, error) {
	glog.Infof("%s Delete called with key: %d", s.name, in.GetValue())

	length, err := s.set.Delete(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	engineLength.WithLabelValues(s.name).Set(float64(length))

	return new(empty.Empty), nil
}

// Len returns the number of keys in the set.
func (s *orderedSetServer) Len(ctx context.Context, in *empty.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.set.Len())), nil
}

// Reset removes all keys from the set.
func (s *orderedSetServer) Reset(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Infof("%s Reset called", s.name)

	s.set.Reset()
	engineLength.WithLabelValues(s.name).Set(0)

	return new(empty.Empty), nil
}

// compactListServer implements the server API for the CompactList service.
type compactListServer struct {
	UnimplementedCompactListServer
	list *List
}

// NewCompactListServer creates a new server of an XOR linked list.
func NewCompactListServer() CompactListServer {
	return &compactListServer{list: NewList()}
}

// maxExactInteger is the largest magnitude a number field carries without
// ambiguity: 1<<53 is also what 1<<53 + 1 rounds to.
const maxExactInteger = 1<<53 - 1

// integer extracts an integral field from the given struct.  Numbers are
// doubles on the wire and must not exceed maxExactInteger in magnitude;
// larger values are sent as decimal strings, as proto3 JSON encodes int64.
func integer(in *structpb.Struct, field string) (value int64, ok bool, err error) {
	v, ok := in.GetFields()[field]
	if !ok {
		return
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		f := kind.NumberValue
		if f != math.Trunc(f) || maxExactInteger < math.Abs(f) {
			return 0, true, status.Errorf(codes.InvalidArgument, "field %q is not an exact integer: %v", field, f)
		}
		return int64(f), true, nil
	case *structpb.Value_StringValue:
		value, err = strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return 0, true, status.Errorf(codes.InvalidArgument, "field %q is not an integer: %v", field, err)
		}
		return value, true, nil
	default:
		return 0, true, status.Errorf(codes.InvalidArgument, "field %q is not a number", field)
	}
}

// position converts the given position into an int.
func position(p int64) (int, error) {
	if p < math.MinInt || math.MaxInt < p {
		return 0, status.Errorf(codes.OutOfRange, "position %d overflows", p)
	}
	return int(p), nil
}

// Insert places the given value at the given position, or at the tail when
// no position is given.
func (s *compactListServer) Insert(ctx context.Context, in *structpb.Struct) (*empty.Empty, error) {
	value, ok, err := integer(in, "value")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `missing field "value"`)
	}
	pos, hasPosition, err := integer(in, "position")
	if err != nil {
		return nil, err
	}

	if !hasPosition {
		glog.Infof("%s Insert called with value: %d", CompactListService, value)
		engineLength.WithLabelValues(CompactListService).Set(float64(s.list.Append(value)))
		return new(empty.Empty), nil
	}

	glog.Infof("%s Insert called with value: %d position: %d", CompactListService, value, pos)
	p, err := position(pos)
	if err != nil {
		return nil, err
	}
	length, err := s.list.Insert(value, p)
	if err != nil {
		return nil, toStatus(err)
	}
	engineLength.WithLabelValues(CompactListService).Set(float64(length))

	return new(empty.Empty), nil
}

// Read returns the value at the given position.
func (s *compactListServer) Read(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	glog.Infof("%s Read called with position: %d", CompactListService, in.GetValue())

	p, err := position(in.GetValue())
	if err != nil {
		return nil, err
	}
	value, err := s.list.Read(p)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.Int64(value), nil
}

// Delete removes and returns the value at the given position.
func (s *compactListServer) Delete(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	glog.Infof("%s Delete called with position: %d", CompactListService, in.GetValue())

	p, err := position(in.GetValue())
	if err != nil {
		return nil, err
	}
	value, length, err := s.list.Delete(p)
	if err != nil {
		return nil, toStatus(err)
	}
	engineLength.WithLabelValues(CompactListService).Set(float64(length))

	return wrapperspb.Int64(value), nil
}

// Len returns the number of values in the list.
func (s *compactListServer) Len(ctx context.Context, in *empty.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.list.Len())), nil
}

// Reset removes all values from the list.
func (s *compactListServer) Reset(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Infof("%s Reset called", CompactListService)

	s.list.Reset()
	engineLength.WithLabelValues(CompactListService).Set(0)

	return new(empty.Empty), nil
}

// Register registers the servers of all engines, the B-tree built with the
// given minimum degree.
func Register(s grpc.ServiceRegistrar, degree int) {
	RegisterBTreeServer(s, NewBTreeServer(degree))
	RegisterRedBlackTreeServer(s, NewRedBlackTreeServer())
	RegisterCompactListServer(s, NewCompactListServer())
}
