package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/infra/logger"
)

// InfluxSink writes production plans to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
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

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.PlanSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
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

// RecordPlan writes one production_plan point and one plant_setpoint point
// per plant, all tagged with the plan id.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Entries)+1)
	points = append(points, write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", ev.PlanID).
		AddTag("balanced", strconv.FormatBool(ev.Balanced)).
		AddField("load_mw", ev.Load).
		AddField("requested_mw", round3(float64(ev.RequestedPower)/10)).
		AddField("dispatched_mw", round3(float64(ev.DispatchedPower)/10)).
		AddField("hourly_cost", round3(ev.HourlyCost)).
		SetTime(ev.Time))
	for _, e := range ev.Entries {
		points = append(points, write.NewPointWithMeasurement("plant_setpoint").
			AddTag("plan_id", ev.PlanID).
			AddTag("plant", e.Name).
			AddTag("category", e.Category.String()).
			AddField("power_mw", round3(float64(e.Power)/10)).
			AddField("cost", round3(e.Cost)).
			SetTime(ev.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordRejection writes a plan_rejected point.
func (s *InfluxSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_rejected").
		AddTag("reason", ev.Reason).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
