package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"transfer-storefront/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	headerRetryCount = "x-retry-count"
	handlerTimeout   = 2 * time.Minute
)

// ErrPermanent marks a handler failure that must not be retried.
var ErrPermanent = errors.New("permanent failure")

type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type RetryStrategy string

const (
	FixedRetry       RetryStrategy = "fixed"
	ExponentialRetry RetryStrategy = "exponential"
	LinearRetry      RetryStrategy = "linear"
)

type SubscribeOptions struct {
	QueueOpts        *QueueConfig
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	MaxRetryAttempts int
	EnableDeadLetter bool
	DeadLetterName   string
	RetryStrategy    RetryStrategy
	BaseRetryDelay   time.Duration
	MaxRetryDelay    time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      2,
		PrefetchCount:    10,
		MaxRetryAttempts: 5,
		EnableDeadLetter: true,
		DeadLetterName:   "fail:" + queueName,
		RetryStrategy:    ExponentialRetry,
		BaseRetryDelay:   2 * time.Second,
		MaxRetryDelay:    5 * time.Minute,
	}
}

// Subscriber consumes one queue with WorkerCount channels. Failed messages
// are republished with a delay up to MaxRetryAttempts, then dead-lettered.
type Subscriber struct {
	connManager *ConnectionManager
	channels    []*ChannelManager
	handler     MessageHandler
	opts        *SubscribeOptions
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	isRunning   atomic.Bool
	pool        *ants.Pool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	if opts == nil || opts.QueueName == "" {
		return nil, fmt.Errorf("queue name is required")
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("subscriber %s worker panic: %v\n", opts.QueueName, i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create subscriber pool: %w", err)
	}

	sub := &Subscriber{
		connManager: connManager,
		channels:    make([]*ChannelManager, opts.WorkerCount),
		handler:     handler,
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		pool:        pool,
	}
	for i := range sub.channels {
		sub.channels[i] = NewChannelManager(ctx, connManager)
	}
	return sub, nil
}

func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return fmt.Errorf("subscriber %s is already running", s.opts.QueueName)
	}
	for i := 0; i < s.opts.WorkerCount; i++ {
		workerID := i
		s.wg.Add(1)
		if err := s.pool.Submit(func() { s.runWorker(workerID) }); err != nil {
			s.wg.Done()
			return fmt.Errorf("failed to start worker %d: %w", workerID, err)
		}
	}
	logger.Info.Printf("subscriber %s started with %d workers\n", s.opts.QueueName, s.opts.WorkerCount)
	return nil
}

func (s *Subscriber) runWorker(workerID int) {
	defer s.wg.Done()

	backoff := &exponentialBackoff{min: time.Second, max: 30 * time.Second, factor: 2}
	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(workerID); err != nil {
			logger.Warning.Printf("subscriber %s worker %d: %v\n", s.opts.QueueName, workerID, err)
			if !backoff.wait(s.ctx) {
				return
			}
			continue
		}
		backoff.reset()
	}
}

type exponentialBackoff struct {
	min    time.Duration
	max    time.Duration
	factor float64
	curr   time.Duration
}

func (b *exponentialBackoff) next() time.Duration {
	if b.curr == 0 {
		b.curr = b.min
	} else {
		b.curr = time.Duration(float64(b.curr) * b.factor)
		if b.curr > b.max {
			b.curr = b.max
		}
	}
	return b.curr
}

// wait sleeps for the next backoff step. It reports false when ctx ends first.
func (b *exponentialBackoff) wait(ctx context.Context) bool {
	t := time.NewTimer(b.next())
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (b *exponentialBackoff) reset() {
	b.curr = 0
}

func (s *Subscriber) consume(workerID int) error {
	ch, err := s.channels[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}
	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	cfg := s.opts.QueueOpts
	if cfg == nil {
		cfg = DefaultQueueConfig()
	}
	q, err := ch.QueueDeclare(s.opts.QueueName, cfg.Durable, cfg.AutoDelete, cfg.Exclusive, cfg.NoWait, cfg.Args)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	consumer := fmt.Sprintf("%s-%d-%d", s.opts.ConsumerName, workerID, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, q.Name, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for msg := range msgs {
		d := msg
		if err := s.processMessage(workerID, &d); err != nil {
			logger.Error.Printf("subscriber %s worker %d: %v\n", s.opts.QueueName, workerID, err)
		}
	}
	if s.ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("delivery channel closed")
}

func (s *Subscriber) processMessage(workerID int, msg *amqp.Delivery) error {
	ctx, cancel := context.WithTimeout(s.ctx, handlerTimeout)
	defer cancel()

	herr := s.handler(ctx, msg)
	if herr == nil {
		return msg.Ack(false)
	}

	attempts := retryCount(msg)
	if errors.Is(herr, ErrPermanent) || attempts >= s.opts.MaxRetryAttempts {
		if err := msg.Ack(false); err != nil {
			return fmt.Errorf("failed to ack message: %w", err)
		}
		if !s.opts.EnableDeadLetter {
			return fmt.Errorf("dropping message %s after %d attempts: %w", msg.MessageId, attempts, herr)
		}
		return s.publishToDeadLetter(workerID, msg, herr)
	}

	if err := msg.Ack(false); err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	s.republishWithDelay(workerID, msg, attempts+1)
	return fmt.Errorf("handler error on attempt %d: %w", attempts+1, herr)
}

func retryCount(msg *amqp.Delivery) int {
	if msg.Headers == nil {
		return 0
	}
	switch v := msg.Headers[headerRetryCount].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

func republishing(msg *amqp.Delivery) amqp.Publishing {
	return amqp.Publishing{
		Headers:      msg.Headers,
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.MessageId,
		Timestamp:    msg.Timestamp,
		Type:         msg.Type,
		Body:         msg.Body,
	}
}

func (s *Subscriber) republishWithDelay(workerID int, msg *amqp.Delivery, attempt int) {
	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers[headerRetryCount] = int32(attempt)
	publishing := republishing(msg)
	delay := s.calculateRetryDelay(attempt)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-s.ctx.Done():
			return
		}

		ch, err := s.channels[workerID].GetChannel()
		if err != nil {
			logger.Error.Printf("failed to get channel for retry of %s: %v\n", publishing.MessageId, err)
			return
		}
		if err := ch.PublishWithContext(s.ctx, "", s.opts.QueueName, false, false, publishing); err != nil {
			logger.Error.Printf("failed to republish %s: %v\n", publishing.MessageId, err)
		}
	}()
}

func (s *Subscriber) publishToDeadLetter(workerID int, msg *amqp.Delivery, cause error) error {
	ch, err := s.channels[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel for dead letter: %w", err)
	}
	if _, err := ch.QueueDeclare(s.opts.DeadLetterName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers["x-death-reason"] = cause.Error()
	msg.Headers["x-death-time"] = time.Now().UTC().Format(time.RFC3339)
	msg.Headers["x-death-queue"] = s.opts.QueueName

	if err := ch.PublishWithContext(s.ctx, "", s.opts.DeadLetterName, false, false, republishing(msg)); err != nil {
		return fmt.Errorf("failed to publish to dead letter queue: %w", err)
	}
	logger.Warning.Printf("message %s moved to %s: %v\n", msg.MessageId, s.opts.DeadLetterName, cause)
	return nil
}

func (s *Subscriber) calculateRetryDelay(attempt int) time.Duration {
	var delay time.Duration
	switch s.opts.RetryStrategy {
	case FixedRetry:
		delay = s.opts.BaseRetryDelay
	case LinearRetry:
		delay = s.opts.BaseRetryDelay * time.Duration(attempt)
	default:
		delay = s.opts.BaseRetryDelay
		for i := 1; i < attempt && delay < s.opts.MaxRetryDelay; i++ {
			delay *= 2
		}
	}
	if s.opts.MaxRetryDelay > 0 && delay > s.opts.MaxRetryDelay {
		delay = s.opts.MaxRetryDelay
	}
	return delay
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for %s workers to stop", s.opts.QueueName)
	}

	for i, ch := range s.channels {
		if err := ch.Close(); err != nil {
			logger.Error.Printf("failed to close channel %d of %s: %v\n", i, s.opts.QueueName, err)
		}
	}
	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && s.pool.Running() > 0
}
