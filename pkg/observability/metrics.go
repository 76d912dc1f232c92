package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes per-operation counters and latency to CloudWatch.
// Publishing is best effort and asynchronous; it never blocks or fails a
// request.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher. A disabled instance records
// nothing, so callers need no nil checks.
func NewMetrics(namespace string, client *cloudwatch.Client, enabled bool, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		enabled:   enabled && client != nil,
		logger:    logger,
	}
}

// RecordOperation records one gated operation invocation and its outcome.
func (m *Metrics) RecordOperation(operation string, ok bool, duration time.Duration) {
	if m == nil || !m.enabled {
		return
	}

	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	dims := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	}
	now := time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace: aws.String(m.namespace),
			MetricData: []types.MetricDatum{
				{
					MetricName: aws.String("OperationCount"),
					Dimensions: dims,
					Timestamp:  aws.Time(now),
					Unit:       types.StandardUnitCount,
					Value:      aws.Float64(1),
				},
				{
					MetricName: aws.String("OperationLatency"),
					Dimensions: dims,
					Timestamp:  aws.Time(now),
					Unit:       types.StandardUnitMilliseconds,
					Value:      aws.Float64(float64(duration.Milliseconds())),
				},
			},
		})
		if err != nil && m.logger != nil {
			m.logger.Warn("Failed to publish metrics",
				zap.String("operation", operation),
				zap.Error(err),
			)
		}
	}()
}
