package serverApp

import (
	"context"
	"fmt"
	"sync"
	"time"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/logger"
	"transfer-storefront/internal/pkg/rabbitmq"

	"github.com/panjf2000/ants"
)

type consumer struct {
	queue   string
	workers int
	handler rabbitmq.MessageHandler
}

// InitWorker starts the queue consumers on a shared pool and stops them
// when ctx ends. Without a broker connection nothing is started; payment
// results are then finalized inline by the transfer service.
func InitWorker(ctx context.Context, wg *sync.WaitGroup, rb *rabbitmq.ConnectionManager, svc *Services) error {
	if rb == nil {
		logger.Warning.Println("rabbitmq not connected, workers disabled")
		return nil
	}

	consumers := []consumer{
		{queue: types.QueuePaymentResult, workers: 4, handler: svc.Transfer.HandlePaymentResult},
		{queue: types.QueueEmailCaptured, workers: 1, handler: svc.Auth.HandleEmailCaptured},
	}

	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}
	pool, err := ants.NewPool(len(consumers), ants.WithOptions(poolOpts))
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}

	for _, c := range consumers {
		opts := rabbitmq.DefaultSubscribeOptions(c.queue)
		opts.WorkerCount = c.workers

		sub, err := rabbitmq.NewSubscriber(ctx, rb, c.handler, opts)
		if err != nil {
			pool.Release()
			return fmt.Errorf("failed to create %s subscriber: %w", c.queue, err)
		}

		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			if err := sub.Start(); err != nil {
				logger.Error.Printf("Failed to initialize worker %s: %v\n", c.queue, err)
				return
			}
			<-ctx.Done()
			if err := sub.Stop(); err != nil {
				logger.Error.Printf("Failed to stop worker %s: %v\n", c.queue, err)
			}
		})
		if err != nil {
			wg.Done()
			pool.Release()
			return fmt.Errorf("failed to submit task to pool: %w", err)
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		pool.Release()
	}()
	return nil
}
