package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNoConnection = errors.New("rabbitmq connection not available")

// ChannelManager lazily opens a channel and reopens it after the broker
// closes it.
type ChannelManager struct {
	ctx         context.Context
	connManager *ConnectionManager
	mu          sync.Mutex
	ch          *amqp.Channel
}

func NewChannelManager(ctx context.Context, connManager *ConnectionManager) *ChannelManager {
	return &ChannelManager{
		ctx:         ctx,
		connManager: connManager,
	}
}

func (c *ChannelManager) GetChannel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ctx.Err(); err != nil {
		return nil, err
	}
	if c.ch != nil && !c.ch.IsClosed() {
		return c.ch, nil
	}

	conn := c.connManager.GetConnection()
	if conn == nil || conn.IsClosed() {
		return nil, ErrNoConnection
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	c.ch = ch
	return ch, nil
}

func (c *ChannelManager) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil || c.ch.IsClosed() {
		c.ch = nil
		return nil
	}
	err := c.ch.Close()
	c.ch = nil
	return err
}
