package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/core/parking"
	"github.com/openlot/parkd/core/pricing"
	"github.com/openlot/parkd/infra/mqtt"
	"github.com/openlot/parkd/infra/notify"
)

func waitForMQTTReady(broker string, timeout time.Duration) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		lastErr = token.Error()
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for broker")
	}
	return lastErr
}

func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
`
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())
	if err := waitForMQTTReady(broker, 5*time.Second); err != nil {
		t.Logf("mosquitto not ready at %s: %v", broker, err)
		t.Skip("Mosquitto not ready after retries")
	}
	return cont, broker
}

func TestSessionEventsOverMQTTContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()

	cont, broker := startMosquitto(ctx, t)
	defer func() { _ = cont.Terminate(ctx) }()

	received := make(chan paho.Message, 8)
	subOpts := paho.NewClientOptions().AddBroker(broker).SetClientID("subscriber")
	sub := paho.NewClient(subOpts)
	if token := sub.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("subscriber connect: %v", token.Error())
	}
	defer sub.Disconnect(100)
	if token := sub.Subscribe("parkd/events/#", 1, func(_ paho.Client, m paho.Message) {
		received <- m
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}

	pub, err := mqtt.NewPahoPublisher(mqtt.Config{
		Enabled:  true,
		Broker:   broker,
		ClientID: "parkd-test",
		QoS:      1,
	})
	require.NoError(t, err)
	defer pub.Close()

	inv := parking.NewSpaceInventory()
	require.NoError(t, inv.AddSpaces([]model.Space{{ID: "S1", Size: model.SizeStandard}}))
	engine, err := parking.NewEngine(inv, pricing.NewFlatRate(nil, 0), nil)
	require.NoError(t, err)
	engine.RegisterSink(notify.NewMQTTSink(pub, "parkd/events"))

	parked, err := engine.Park(model.Vehicle{ID: "CAR-1", Size: model.SizeStandard})
	require.NoError(t, err)
	require.Empty(t, parked.SinkErrors)
	closed, err := engine.Retrieve("CAR-1")
	require.NoError(t, err)
	require.Empty(t, closed.SinkErrors)

	topics := make([]string, 0, 2)
	tickets := make([]model.Ticket, 0, 2)
	for len(topics) < 2 {
		select {
		case m := <-received:
			var tk model.Ticket
			require.NoError(t, json.Unmarshal(m.Payload(), &tk))
			topics = append(topics, m.Topic())
			tickets = append(tickets, tk)
		case <-time.After(5 * time.Second):
			t.Fatalf("expected 2 messages, got %d on topics %v", len(topics), topics)
		}
	}

	assert.Equal(t, []string{"parkd/events/entry", "parkd/events/exit"}, topics)
	assert.Equal(t, "CAR-1", tickets[0].VehicleID)
	assert.True(t, tickets[0].Open())
	assert.False(t, tickets[1].Open())
	assert.Equal(t, closed.Ticket.Charge, tickets[1].Charge)
}
