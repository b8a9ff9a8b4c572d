package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/domain/core/valueobjects"
	"memoboard/domain/events"
)

type fakeEventBridge struct {
	calls  [][]types.PutEventsRequestEntry
	failed int32
	err    error
}

func (f *fakeEventBridge) PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.calls = append(f.calls, in.Entries)
	if f.err != nil {
		return nil, f.err
	}
	out := &eventbridge.PutEventsOutput{FailedEntryCount: f.failed}
	for range in.Entries {
		entry := types.PutEventsResultEntry{}
		if f.failed > 0 {
			entry.ErrorCode = aws.String("InternalFailure")
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func deletedEvents(t *testing.T, n int) []events.DomainEvent {
	t.Helper()
	out := make([]events.DomainEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.NewMemoDeleted(valueobjects.NewMemoID(), time.Unix(0, 0)))
	}
	return out
}

func TestPublisher_BatchesOfTen(t *testing.T) {
	client := &fakeEventBridge{}
	p := NewPublisher(client, "memoboard-events", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), deletedEvents(t, 23)))

	require.Len(t, client.calls, 3)
	assert.Len(t, client.calls[0], 10)
	assert.Len(t, client.calls[1], 10)
	assert.Len(t, client.calls[2], 3)
}

func TestPublisher_EntryShape(t *testing.T) {
	client := &fakeEventBridge{}
	p := NewPublisher(client, "memoboard-events", zap.NewNop())
	id := valueobjects.NewMemoID()

	event := events.NewMemoCreated(id, "Groceries", "personal", []string{"home"}, false, time.Unix(100, 0))
	require.NoError(t, p.Publish(context.Background(), event))

	entry := client.calls[0][0]
	assert.Equal(t, "memoboard-events", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeMemoCreated, aws.ToString(entry.DetailType))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "Groceries", detail["title"])
	assert.Equal(t, id.String(), detail["aggregate_id"])
}

func TestPublisher_Failures(t *testing.T) {
	p := NewPublisher(&fakeEventBridge{err: errors.New("denied")}, "bus", zap.NewNop())
	assert.Error(t, p.PublishBatch(context.Background(), deletedEvents(t, 1)))

	p = NewPublisher(&fakeEventBridge{failed: 1}, "bus", zap.NewNop())
	assert.EqualError(t, p.PublishBatch(context.Background(), deletedEvents(t, 1)), "1 events failed to publish")

	assert.NoError(t, p.PublishBatch(context.Background(), nil))
}
