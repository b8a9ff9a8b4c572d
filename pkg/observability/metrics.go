package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client used for metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics and monitoring.
// A Metrics with a nil client records nothing.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
	now       func() time.Time
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

// NewNoopMetrics returns metrics that drop every datum
func NewNoopMetrics() *Metrics {
	return &Metrics{now: time.Now}
}

// Namespace returns the CloudWatch namespace
func (m *Metrics) Namespace() string {
	return m.namespace
}

// Increment records a count of one for metric, dimensioned by label
func (m *Metrics) Increment(metric, label string) {
	m.put(metric, label, 1, types.StandardUnitCount)
}

// StartTimer starts timing metric; Stop records the elapsed milliseconds
func (m *Metrics) StartTimer(metric, label string) *Timer {
	return &Timer{
		metrics: m,
		metric:  metric,
		label:   label,
		start:   m.now(),
	}
}

// RecordLatency records latency for any operation
func (m *Metrics) RecordLatency(operation string, latency time.Duration) {
	m.put("operation_latency", operation, float64(latency.Milliseconds()), types.StandardUnitMilliseconds)
}

func (m *Metrics) put(metric, label string, value float64, unit types.StandardUnit) {
	if m.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metric),
				Dimensions: []types.Dimension{
					{
						Name:  aws.String("Type"),
						Value: aws.String(label),
					},
				},
				Value:     aws.Float64(value),
				Unit:      unit,
				Timestamp: aws.Time(m.now()),
			},
		},
	}

	// Metrics never fail the operation being measured
	if _, err := m.client.PutMetricData(context.Background(), input); err != nil && m.logger != nil {
		m.logger.Warn("Failed to send metrics",
			zap.String("metric", metric),
			zap.Error(err),
		)
	}
}

// Timer measures one operation
type Timer struct {
	metrics *Metrics
	metric  string
	label   string
	start   time.Time
	once    sync.Once
}

// Stop records the elapsed time once
func (t *Timer) Stop() {
	t.once.Do(func() {
		elapsed := t.metrics.now().Sub(t.start)
		t.metrics.put(t.metric, t.label, float64(elapsed.Milliseconds()), types.StandardUnitMilliseconds)
	})
}
