package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, "parkd", c.ClientID)
	assert.Equal(t, "parkd/events", c.TopicPrefix)
}

func TestConfigValidate(t *testing.T) {
	c := Config{Enabled: true}
	assert.Error(t, c.Validate())
	c.Broker = "tcp://localhost:1883"
	assert.NoError(t, c.Validate())
	// A disabled publisher needs no broker.
	assert.NoError(t, Config{}.Validate())
}

func TestMockPublisherRecords(t *testing.T) {
	m := NewMockPublisher()
	assert.NoError(t, m.Publish("parkd/events/entry", []byte("{}")))
	assert.Len(t, m.Messages["parkd/events/entry"], 1)
	m.FailAll = true
	assert.Error(t, m.Publish("parkd/events/entry", nil))
}
