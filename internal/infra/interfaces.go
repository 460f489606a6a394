package infra

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

type PaymentGateway interface {
	RequestTransaction(ctx context.Context, req TransactionRequest) (*PaymentResponse, error)
	GetTransactionStatus(ctx context.Context, orderID string) (*TransactionStatus, error)
}

// Cache stores opaque values by key. Misses return ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Publisher emits domain events keyed by routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                               { return nil }

var (
	_ PaymentGateway = (*MidtransClient)(nil)
	_ Publisher      = NoopPublisher{}
)
