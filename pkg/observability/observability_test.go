package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestMetrics_Increment(t *testing.T) {
	cw := &fakeCloudWatch{}
	m := NewMetrics("Memoboard/test", cw, zap.NewNop())

	m.Increment("command_count", "CreateMemoCommand")

	require.Len(t, cw.inputs, 1)
	in := cw.inputs[0]
	assert.Equal(t, "Memoboard/test", aws.ToString(in.Namespace))
	datum := in.MetricData[0]
	assert.Equal(t, "command_count", aws.ToString(datum.MetricName))
	assert.Equal(t, "CreateMemoCommand", aws.ToString(datum.Dimensions[0].Value))
	assert.Equal(t, types.StandardUnitCount, datum.Unit)
	assert.Equal(t, 1.0, aws.ToFloat64(datum.Value))
}

func TestMetrics_TimerStopsOnce(t *testing.T) {
	cw := &fakeCloudWatch{}
	m := NewMetrics("Memoboard/test", cw, zap.NewNop())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	m.now = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(250 * time.Millisecond)
	}

	timer := m.StartTimer("command_duration", "LoadMemosCommand")
	timer.Stop()
	timer.Stop()

	require.Len(t, cw.inputs, 1)
	assert.Equal(t, 250.0, aws.ToFloat64(cw.inputs[0].MetricData[0].Value))
}

func TestMetrics_NoopAndFailures(t *testing.T) {
	NewNoopMetrics().Increment("x", "y")
	NewNoopMetrics().StartTimer("x", "y").Stop()

	cw := &fakeCloudWatch{err: errors.New("throttled")}
	m := NewMetrics("ns", cw, zap.NewNop())
	assert.NotPanics(t, func() { m.RecordLatency("list", time.Second) })
	assert.Len(t, cw.inputs, 1)
}

func TestTracer_WithoutSegment(t *testing.T) {
	tracer := NewTracer("memoboard")
	called := false

	err := tracer.TraceFunction(context.Background(), "command.Load", func(ctx context.Context) error {
		called = true
		return errors.New("boom")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "boom")
	assert.NotPanics(t, func() {
		tracer.AddAnnotation(context.Background(), "k", "v")
		tracer.RecordError(context.Background(), err)
	})
}
