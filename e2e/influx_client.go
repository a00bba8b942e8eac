//go:build e2e

package e2e

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient is a small read helper around the official InfluxDB v2 client
// used to check what the service wrote.
type InfluxClient struct {
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a new client for the given parameters. It assumes
// the server is already running and reachable.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{bucket: bucket, client: c, query: c.QueryAPI(org)}
}

// CountRecords returns the number of records of measurement written during
// the last ten minutes, optionally restricted to one field.
func (c *InfluxClient) CountRecords(ctx context.Context, measurement, field string) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q) |> range(start:-10m) |> filter(fn: (r) => r._measurement == %q)`, c.bucket, measurement)
	if field != "" {
		flux += fmt.Sprintf(` |> filter(fn: (r) => r._field == %q)`, field)
	}
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer func() { _ = res.Close() }()
	count := 0
	for res.Next() {
		count++
	}
	return count, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
