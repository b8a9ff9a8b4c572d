package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/application/queries"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
)

type fakeConnectionTable struct {
	items map[string]map[string]types.AttributeValue
}

func (f *fakeConnectionTable) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[in.Item["PK"].(*types.AttributeValueMemberS).Value] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeConnectionTable) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, in.Key["PK"].(*types.AttributeValueMemberS).Value)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeConnectionTable) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

type fakePoster struct {
	mu    sync.Mutex
	gone  map[string]bool
	fail  bool
	posts map[string][]Message
}

func newFakePoster() *fakePoster {
	return &fakePoster{gone: map[string]bool{}, posts: map[string][]Message{}}
}

func (f *fakePoster) PostToConnection(ctx context.Context, in *apigatewaymanagementapi.PostToConnectionInput, _ ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := aws.ToString(in.ConnectionId)
	if f.gone[id] {
		return nil, &apigwtypes.GoneException{Message: aws.String("gone")}
	}
	if f.fail {
		return nil, errors.New("throttled")
	}
	var msg Message
	if err := json.Unmarshal(in.Data, &msg); err != nil {
		return nil, err
	}
	f.posts[id] = append(f.posts[id], msg)
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func newRegistry(t *testing.T, ids ...string) (*ConnectionRegistry, *fakeConnectionTable) {
	t.Helper()
	table := &fakeConnectionTable{items: map[string]map[string]types.AttributeValue{}}
	registry := NewConnectionRegistry(table, "memoboard-connections", zap.NewNop())
	for _, id := range ids {
		require.NoError(t, registry.Register(context.Background(), id, "abc.execute-api/prod"))
	}
	return registry, table
}

func TestConnectionRegistry(t *testing.T) {
	registry, _ := newRegistry(t, "a", "b")

	conns, err := registry.List(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "abc.execute-api/prod", conns[0].Endpoint)
	assert.Greater(t, conns[0].TTL, time.Now().Unix())

	require.NoError(t, registry.Unregister(context.Background(), "a"))
	conns, err = registry.List(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "b", conns[0].ConnectionID)
}

func TestBroadcaster_PrunesGoneConnections(t *testing.T) {
	registry, table := newRegistry(t, "live", "stale")
	poster := newFakePoster()
	poster.gone["stale"] = true
	b := NewBroadcaster(registry, poster, zap.NewNop())

	b.Show(ports.Notification{Message: "Memo added", Severity: ports.SeveritySuccess})

	require.Len(t, poster.posts["live"], 1)
	assert.Equal(t, MessageNotification, poster.posts["live"][0].Type)
	assert.NotContains(t, table.items, "CONNECTION#stale")
}

func TestBroadcaster_AllFailures(t *testing.T) {
	registry, _ := newRegistry(t, "a")
	poster := newFakePoster()
	poster.fail = true
	b := NewBroadcaster(registry, poster, zap.NewNop())

	assert.EqualError(t, b.Broadcast(context.Background(), MessageViewUpdated, nil), "all message sends failed")
}

func TestBroadcaster_ViewObserver(t *testing.T) {
	registry, _ := newRegistry(t, "a")
	poster := newFakePoster()
	b := NewBroadcaster(registry, poster, zap.NewNop())

	engine := queries.NewMemoQueryEngine(nil)
	unsubscribe := engine.Subscribe(b.ViewObserver(engine))
	defer unsubscribe()

	id, err := valueobjects.MemoIDFromString("1")
	require.NoError(t, err)
	content, err := valueobjects.NewMemoContent("Groceries", "milk")
	require.NoError(t, err)
	memo, err := entities.NewMemo(id, content, "personal", valueobjects.Image{}, nil, time.Now())
	require.NoError(t, err)
	engine.Insert(memo)

	require.Len(t, poster.posts["a"], 1)
	msg := poster.posts["a"][0]
	assert.Equal(t, MessageViewUpdated, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}
