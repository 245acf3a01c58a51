package transport

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/baseclient"
)

// Transaction pairs a pending caller with its cortege; it is completed exactly once.
type Transaction struct {
	ID       string
	Cortege  *Cortege
	Context  context.Context
	Response *baseclient.Response
	err      error
	once     sync.Once
	done     chan struct{}
}

// NewTransaction creates a new transaction
func NewTransaction(ctx context.Context, cortege *Cortege) *Transaction {
	return &Transaction{
		ID:      uuid.New().String(),
		Cortege: cortege,
		Context: ctx,
		done:    make(chan struct{}),
	}
}

// Wait waits for the transaction to finish or ctx to be done.
// Giving up does not withdraw the transaction from its queue.
func (t *Transaction) Wait(ctx context.Context) (*baseclient.Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.Response, t.err
	}
}

// Done returns a channel closed once the transaction completes
func (t *Transaction) Done() <-chan struct{} {
	return t.done
}

// Resolve completes the transaction with a response
func (t *Transaction) Resolve(response *baseclient.Response) {
	t.once.Do(func() {
		t.Response = response
		close(t.done)
	})
}

// Reject completes the transaction with an error, optionally keeping the response
func (t *Transaction) Reject(response *baseclient.Response, err error) {
	t.once.Do(func() {
		t.Response = response
		t.err = err
		close(t.done)
	})
}

// Err returns the transaction error once completed
func (t *Transaction) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Queue is a FIFO of pending transactions; the head is the one being executed.
type Queue struct {
	mux   sync.Mutex
	items []*Transaction
}

// Push appends a transaction and reports whether it became the head,
// i.e. whether the caller has to start executing it.
func (q *Queue) Push(transaction *Transaction) bool {
	q.mux.Lock()
	defer q.mux.Unlock()
	q.items = append(q.items, transaction)
	return len(q.items) == 1
}

// Head returns the current head or nil
func (q *Queue) Head() *Transaction {
	q.mux.Lock()
	defer q.mux.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Advance removes the head and returns the next transaction to execute, or nil when empty.
func (q *Queue) Advance() *Transaction {
	q.mux.Lock()
	defer q.mux.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
		return nil
	}
	return q.items[0]
}

// Len returns number of queued transactions including the running one
func (q *Queue) Len() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	return len(q.items)
}
