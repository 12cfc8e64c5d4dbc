package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	msg := kafkago.Message{
		Key:       []byte("bridger"),
		Value:     []byte(`{"zone":"bridger"}`),
		Topic:     "raw-avalanche-forecasts",
		Partition: 2,
		Offset:    42,
	}

	r := &Reader{}
	raw := r.mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("bridger"), raw.Key)
	assert.JSONEq(t, `{"zone":"bridger"}`, string(raw.Value))
	assert.Equal(t, "raw-avalanche-forecasts", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.NotNil(t, raw.Commit)
}
