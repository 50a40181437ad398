package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	coremetrics "github.com/betsim/betroute/core/metrics"
	"github.com/betsim/betroute/infra/logger"
)

// InfluxSink writes staging results to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so a missing collector never blocks a
// scenario run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordStaging writes one point per staging result.
func (s *InfluxSink) RecordStaging(res coremetrics.StagingResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reasons := make([]string, len(res.StopReasons))
	for i, r := range res.StopReasons {
		reasons[i] = r.String()
	}
	ts := res.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := influxdb2.NewPoint("staging",
		map[string]string{
			"person":  res.PersonID,
			"vehicle": res.VehicleID,
			"outcome": string(res.Outcome),
		},
		map[string]interface{}{
			"plan_id": res.PlanID,
			"stops":   len(res.StopReasons),
			"reasons": strings.Join(reasons, ","),
			"legs":    res.Legs,
			"arrival": res.ArrivalTime,
			"error":   res.Error,
		},
		ts)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		s.log.Errorf("influx write: %v", err)
		return err
	}
	return nil
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
