//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/powerplan/app"
	"github.com/kilianp07/powerplan/config"
)

const (
	influxOrg    = "e2e_org"
	influxBucket = "e2e_bucket"
	influxToken  = "e2e-token"
)

// startInflux starts an InfluxDB 2.7 container already set up with the test
// organisation, bucket and token, and returns it along with the base URL.
func startInflux(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "e2e",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "e2e-password",
			"DOCKER_INFLUXDB_INIT_ORG":         influxOrg,
			"DOCKER_INFLUXDB_INIT_BUCKET":      influxBucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": influxToken,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	return cont, fmt.Sprintf("http://%s:%s", host, port.Port())
}

// startMosquitto spins up a Mosquitto broker accepting anonymous clients.
func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start mosquitto: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "1883")
	return cont, fmt.Sprintf("tcp://%s:%s", host, port.Port())
}

// subscribeSetpoints collects every setpoint message published on the broker.
func subscribeSetpoints(t *testing.T, broker string) (*sync.Map, func()) {
	t.Helper()
	var got sync.Map
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("e2e-observer")
	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		t.Fatalf("observer connect: %v", tok.Error())
	}
	tok := cli.Subscribe("powerplan/plants/+/setpoint", 1, func(_ paho.Client, m paho.Message) {
		var msg struct {
			Plant   string  `json:"plant"`
			PowerMW float64 `json:"power_mw"`
		}
		if err := json.Unmarshal(m.Payload(), &msg); err == nil {
			got.Store(msg.Plant, msg.PowerMW)
		}
	})
	if tok.Wait() && tok.Error() != nil {
		t.Fatalf("observer subscribe: %v", tok.Error())
	}
	return &got, func() { cli.Disconnect(250) }
}

func TestProductionPlanEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	influxCont, influxURL := startInflux(ctx, t)
	defer influxCont.Terminate(ctx) //nolint:errcheck
	mqttCont, brokerURL := startMosquitto(ctx, t)
	defer mqttCont.Terminate(ctx) //nolint:errcheck

	setpoints, stop := subscribeSetpoints(t, brokerURL)
	defer stop()

	cfg := config.Default()
	cfg.Metrics.InfluxEnabled = true
	cfg.Metrics.InfluxURL = influxURL
	cfg.Metrics.InfluxOrg = influxOrg
	cfg.Metrics.InfluxBucket = influxBucket
	cfg.Metrics.InfluxToken = influxToken
	cfg.MQTT.Enabled = true
	cfg.MQTT.Broker = brokerURL
	cfg.MQTT.ClientID = "e2e-service"
	cfg.MQTT.QoS = 1
	require.NoError(t, cfg.Validate())

	svc, err := app.New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()

	body, err := os.ReadFile("../api/productionplan/testdata/payload1.json")
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/productionplan", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, svc.Close())

	require.Eventually(t, func() bool {
		n := 0
		setpoints.Range(func(any, any) bool { n++; return true })
		return n == 6
	}, 10*time.Second, 100*time.Millisecond)
	p, _ := setpoints.Load("gasfiredbig1")
	assert.Equal(t, 369.0, p)

	influx := NewInfluxClient(influxURL, influxOrg, influxBucket, influxToken)
	defer influx.Close()
	plans, err := influx.CountRecords(ctx, "production_plan", "dispatched_mw")
	require.NoError(t, err)
	assert.Equal(t, 1, plans)
	plants, err := influx.CountRecords(ctx, "plant_setpoint", "power_mw")
	require.NoError(t, err)
	assert.Equal(t, 6, plants)
}
