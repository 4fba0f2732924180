package rabbitmq

import (
	"context"
	"fmt"
	"sync"
)

// IPublisher publishes typed events onto durable queues.
type IPublisher interface {
	Publish(ctx context.Context, queueName, msgType string, payload any) error
}

type Publisher struct {
	channel  *ChannelManager
	mu       sync.Mutex
	declared map[string]bool
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, ErrNoConnection
	}
	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		declared: make(map[string]bool),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, queueName, msgType string, payload any) error {
	msg, err := NewMessage(msgType, payload, nil)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}

	if !p.declared[queueName] {
		cfg := DefaultQueueConfig()
		if _, err := ch.QueueDeclare(queueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
		p.declared[queueName] = true
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, *msg.GeneratePayload()); err != nil {
		// The channel may have been reset; declare again next time.
		delete(p.declared, queueName)
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
