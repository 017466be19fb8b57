package worker_test

import (
	"context"
	"sync"

	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
)

type mockConsumer struct {
	readFn    func(ctx context.Context) ([]queue.Message, error)
	ackFn     func(ctx context.Context, msg queue.Message) error
	requeueFn func(ctx context.Context, msg queue.Message, errMsg string) error
	sendDLQFn func(ctx context.Context, msg queue.Message, errMsg string) error

	mu       sync.Mutex
	acked    []string
	requeued []string
	dlq      []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (m *mockConsumer) Ack(ctx context.Context, msg queue.Message) error {
	m.mu.Lock()
	m.acked = append(m.acked, msg.ID)
	m.mu.Unlock()
	if m.ackFn != nil {
		return m.ackFn(ctx, msg)
	}
	return nil
}

func (m *mockConsumer) Requeue(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	m.requeued = append(m.requeued, msg.ID)
	m.mu.Unlock()
	if m.requeueFn != nil {
		return m.requeueFn(ctx, msg, errMsg)
	}
	return nil
}

func (m *mockConsumer) SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	m.dlq = append(m.dlq, msg.ID)
	m.mu.Unlock()
	if m.sendDLQFn != nil {
		return m.sendDLQFn(ctx, msg, errMsg)
	}
	return nil
}

// memoryClaimer behaves like SET NX on a map.
type memoryClaimer struct {
	mu       sync.Mutex
	held     map[int64]bool
	claimErr error
	released []int64
}

func newMemoryClaimer() *memoryClaimer {
	return &memoryClaimer{held: make(map[int64]bool)}
}

func (c *memoryClaimer) Claim(_ context.Context, id int64) (bool, error) {
	if c.claimErr != nil {
		return false, c.claimErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held[id] {
		return false, nil
	}
	c.held[id] = true
	return true, nil
}

func (c *memoryClaimer) Release(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.held, id)
	c.released = append(c.released, id)
	return nil
}

type mockSender struct {
	sendFn func(ctx context.Context, email mailer.Email) error

	mu   sync.Mutex
	sent []mailer.Email
}

func (m *mockSender) Send(ctx context.Context, email mailer.Email) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, email); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	return nil
}

func (m *mockSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
