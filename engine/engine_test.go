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
	"net"
	"strconv"
	"testing"

	"github.com/golang/protobuf/ptypes/empty"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const bufSize = 1 << 20

// dial starts a server with the given registration on an in-memory listener
// and returns a connection to it.
func dial(t *testing.T, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			UnaryServerInterceptor(),
			grpc_recovery.UnaryServerInterceptor(),
		),
	)
	register(server)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func code(err error) codes.Code {
	return status.Code(err)
}

func TestOrderedSetServices(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { Register(s, 3) })
	ctx := context.Background()

	for name, client := range map[string]OrderedSetClient{
		BTreeService:        NewBTreeClient(conn),
		RedBlackTreeService: NewRedBlackTreeClient(conn),
	} {
		t.Run(name, func(t *testing.T) {
			for _, key := range []int64{10, 20, 5, 6, 12, 30, 7, 17} {
				_, err := client.Insert(ctx, wrapperspb.Int64(key))
				require.NoError(t, err)
			}
			found, err := client.Read(ctx, wrapperspb.Int64(20))
			require.NoError(t, err)
			assert.True(t, found.GetValue())

			_, err = client.Delete(ctx, wrapperspb.Int64(20))
			require.NoError(t, err)
			found, err = client.Read(ctx, wrapperspb.Int64(20))
			require.NoError(t, err)
			assert.False(t, found.GetValue())

			_, err = client.Delete(ctx, wrapperspb.Int64(20))
			assert.Equal(t, codes.NotFound, code(err))

			length, err := client.Len(ctx, new(empty.Empty))
			require.NoError(t, err)
			assert.EqualValues(t, 7, length.GetValue())
			assert.EqualValues(t, 7, testutil.ToFloat64(engineLength.WithLabelValues(name)))

			_, err = client.Reset(ctx, new(empty.Empty))
			require.NoError(t, err)
			length, err = client.Len(ctx, new(empty.Empty))
			require.NoError(t, err)
			assert.Zero(t, length.GetValue())
		})
	}
}

func TestCompactListService(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { Register(s, 3) })
	client := NewCompactListClient(conn)
	ctx := context.Background()

	_, err := client.Read(ctx, wrapperspb.Int64(0))
	assert.Equal(t, codes.FailedPrecondition, code(err))

	insert := func(fields map[string]interface{}) error {
		in, err := structpb.NewStruct(fields)
		require.NoError(t, err)
		_, err = client.Insert(ctx, in)
		return err
	}
	require.NoError(t, insert(map[string]interface{}{"value": 1}))
	require.NoError(t, insert(map[string]interface{}{"value": 2, "position": 0}))

	first, err := client.Read(ctx, wrapperspb.Int64(0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, first.GetValue())
	second, err := client.Read(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.GetValue())

	deleted, err := client.Delete(ctx, wrapperspb.Int64(0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted.GetValue())
	first, err = client.Read(ctx, wrapperspb.Int64(0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.GetValue())

	assert.Equal(t, codes.OutOfRange, code(insert(map[string]interface{}{"value": 3, "position": 5})))
	_, err = client.Read(ctx, wrapperspb.Int64(-1))
	assert.Equal(t, codes.OutOfRange, code(err))
	_, err = client.Delete(ctx, wrapperspb.Int64(1))
	assert.Equal(t, codes.OutOfRange, code(err))

	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"position": 0})))
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": "one"})))
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": 1.5})))

	length, err := client.Len(ctx, new(empty.Empty))
	require.NoError(t, err)
	assert.EqualValues(t, 1, length.GetValue())

	_, err = client.Reset(ctx, new(empty.Empty))
	require.NoError(t, err)
	_, err = client.Delete(ctx, wrapperspb.Int64(0))
	assert.Equal(t, codes.FailedPrecondition, code(err))
}

func TestOperationsCounted(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { Register(s, 2) })
	client := NewRedBlackTreeClient(conn)
	ctx := context.Background()

	const method = "/collections.RedBlackTree/Delete"
	before := testutil.ToFloat64(operationsTotal.WithLabelValues(method, codes.NotFound.String()))
	_, err := client.Delete(ctx, wrapperspb.Int64(42))
	assert.Equal(t, codes.NotFound, code(err))
	after := testutil.ToFloat64(operationsTotal.WithLabelValues(method, codes.NotFound.String()))
	assert.Equal(t, before+1, after)
}

// panicking is an ordered set server whose inserts panic.
type panicking struct {
	UnimplementedOrderedSetServer
}

func (panicking) Insert(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error) {
	panic("insert")
}

func TestPanicRecovered(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { RegisterBTreeServer(s, panicking{}) })
	client := NewBTreeClient(conn)
	ctx := context.Background()

	_, err := client.Insert(ctx, wrapperspb.Int64(1))
	assert.Equal(t, codes.Internal, code(err))
	_, err = client.Read(ctx, wrapperspb.Int64(1))
	assert.Equal(t, codes.Unimplemented, code(err))
}

func TestSetSerializesCallers(t *testing.T) {
	for _, typ := range []int{BTREE, REDBLACKTREE} {
		s := NewSet(typ, 2)
		done := make(chan struct{})
		for w := 0; w < 8; w++ {
			go func(w int) {
				defer func() { done <- struct{}{} }()
				for i := 0; i < 500; i++ {
					s.Insert(int64(w*1000 + i))
				}
			}(w)
		}
		for w := 0; w < 8; w++ {
			<-done
		}
		assert.Equal(t, 4000, s.Len())
		length, err := s.Delete(3)
		require.NoError(t, err)
		assert.Equal(t, 3999, length)
		assert.False(t, s.Read(3))
	}
}

func TestListSerializesCallers(t *testing.T) {
	l := NewList()
	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				l.Append(int64(i))
			}
		}()
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	assert.Equal(t, 4000, l.Len())
	l.Reset()
	assert.Zero(t, l.Len())
}

func TestNewSetPanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() { NewSet(-1, 2) })
}

func TestCompactListExactIntegers(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { Register(s, 3) })
	client := NewCompactListClient(conn)
	ctx := context.Background()

	insert := func(fields map[string]interface{}) error {
		in, err := structpb.NewStruct(fields)
		require.NoError(t, err)
		_, err = client.Insert(ctx, in)
		return err
	}

	// doubles cannot hold 1<<53 + 1
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": int64(1<<53 + 1)})))
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": int64(-(1 << 53))})))
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": "12x"})))
	assert.Equal(t, codes.InvalidArgument, code(insert(map[string]interface{}{"value": "9223372036854775808"})))
	length, err := client.Len(ctx, new(empty.Empty))
	require.NoError(t, err)
	assert.Zero(t, length.GetValue())

	for _, want := range []int64{1<<53 - 1, -(1<<53 - 1)} {
		require.NoError(t, insert(map[string]interface{}{"value": want, "position": 0}))
		got, err := client.Read(ctx, wrapperspb.Int64(0))
		require.NoError(t, err)
		assert.Equal(t, want, got.GetValue())
	}
	for _, want := range []int64{1<<53 + 1, -1 << 63, 1<<63 - 1} {
		require.NoError(t, insert(map[string]interface{}{"value": strconv.FormatInt(want, 10), "position": "0"}))
		got, err := client.Read(ctx, wrapperspb.Int64(0))
		require.NoError(t, err)
		assert.Equal(t, want, got.GetValue())
	}
}

func TestServiceDescriptors(t *testing.T) {
	for name, desc := range map[string]*grpc.ServiceDesc{
		BTreeService:        BTree_ServiceDesc,
		RedBlackTreeService: RedBlackTree_ServiceDesc,
		CompactListService:  CompactList_ServiceDesc,
	} {
		assert.Equal(t, name, desc.ServiceName)
		assert.Empty(t, desc.Metadata, name)
		methods := make([]string, 0, len(desc.Methods))
		for _, m := range desc.Methods {
			methods = append(methods, m.MethodName)
		}
		assert.Equal(t, []string{"Insert", "Read", "Delete", "Len", "Reset"}, methods, name)
	}
}
