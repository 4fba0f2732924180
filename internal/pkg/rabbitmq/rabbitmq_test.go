package rabbitmq

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_ContentTypes(t *testing.T) {
	msg, err := NewMessage("evt", map[string]int{"a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.JSONEq(t, `{"a":1}`, string(msg.Body))
	assert.Contains(t, msg.ID, "msg_")

	msg, err = NewMessage("evt", "plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", msg.ContentType)

	pub := msg.GeneratePayload()
	assert.Equal(t, "evt", pub.Type)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, msg.ID, pub.Headers["id"])
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	out, err := Decode[payload](&amqp.Delivery{Body: []byte(`{"name":"x"}`)})
	require.NoError(t, err)
	assert.Equal(t, "x", out.Name)

	_, err = Decode[payload](&amqp.Delivery{Body: []byte(`{`)})
	assert.Error(t, err)
}

func TestRetryCount(t *testing.T) {
	assert.Equal(t, 0, retryCount(&amqp.Delivery{}))
	assert.Equal(t, 3, retryCount(&amqp.Delivery{Headers: amqp.Table{headerRetryCount: int32(3)}}))
	assert.Equal(t, 4, retryCount(&amqp.Delivery{Headers: amqp.Table{headerRetryCount: int64(4)}}))
}

func TestCalculateRetryDelay(t *testing.T) {
	s := &Subscriber{opts: &SubscribeOptions{
		RetryStrategy:  ExponentialRetry,
		BaseRetryDelay: time.Second,
		MaxRetryDelay:  10 * time.Second,
	}}
	assert.Equal(t, time.Second, s.calculateRetryDelay(1))
	assert.Equal(t, 2*time.Second, s.calculateRetryDelay(2))
	assert.Equal(t, 8*time.Second, s.calculateRetryDelay(4))
	assert.Equal(t, 10*time.Second, s.calculateRetryDelay(9))

	s.opts.RetryStrategy = LinearRetry
	assert.Equal(t, 3*time.Second, s.calculateRetryDelay(3))

	s.opts.RetryStrategy = FixedRetry
	assert.Equal(t, time.Second, s.calculateRetryDelay(7))
}

func TestBackoff_StopsOnContext(t *testing.T) {
	b := &exponentialBackoff{min: time.Hour, max: time.Hour, factor: 2}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, b.wait(ctx))

	b = &exponentialBackoff{min: time.Millisecond, max: 4 * time.Millisecond, factor: 2}
	assert.Equal(t, time.Millisecond, b.next())
	assert.Equal(t, 2*time.Millisecond, b.next())
	assert.Equal(t, 4*time.Millisecond, b.next())
	assert.Equal(t, 4*time.Millisecond, b.next())
	b.reset()
	assert.Equal(t, time.Millisecond, b.next())
}

func TestNewPublisher_RequiresConnection(t *testing.T) {
	_, err := NewPublisher(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoConnection)
}
