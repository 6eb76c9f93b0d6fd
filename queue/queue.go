package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Queue represents a queue where tasks to develop
// draft nodes can be pushed and pulled. A worker
// uses the Pull method to obtain a task, develops
// its draft and pushes the tasks for the resulting
// children before completing it, or drops it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns a task and a context that may have
	// a timeout or allow its cancellation, or an error.
	// The pulled task will be counted as running from
	// then on.
	// If there are no tasks to pull, implementations
	// should not return an error, but 3 nil values.
	Pull(context.Context) (*Task, context.Context, error)
	// Drop takes the ID for a task and makes it available
	// for pulling from the Queue again, unless it has been
	// completed. Workers should use this to return to the
	// queue tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the running state.
	Complete(context.Context, string) error
	// Count returns the number of pending and running
	// tasks in the queue or an error
	Count(context.Context) (int, int, error)
	// Stop stops the queue. Implementations should use the
	// call to free resources and cancel pulled contexts.
	Stop(context.Context) error
}

type memQueue struct {
	ring      []*Task
	head      int
	tail      int
	pending   int
	running   map[string]*Task
	lock      *sync.RWMutex
	ctx       context.Context
	ctxCancel context.CancelFunc
}

// New returns a queue backed only by the process memory
func New() Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &memQueue{
		running:   make(map[string]*Task),
		lock:      &sync.RWMutex{},
		ctx:       ctx,
		ctxCancel: cancel,
	}
}

// WaitFor takes a context, a queue and a polling
// interval and waits for all its tasks to have been
// processed, that is, for the given queue's Count
// method to return 0, 0, nil.
// It will return a non-nil error if the given context
// times out or is cancelled, or if the queue's Count
// operation returns an error.
func WaitFor(ctx context.Context, q Queue, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pending, running, err := q.Count(ctx)
		if err != nil {
			return err
		}
		if pending+running == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.withLock(ctx, func() error {
		mq.push(t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, context.Context, error) {
	var task *Task
	err := mq.withLock(ctx, func() error {
		if mq.pending == 0 {
			return nil
		}
		mq.pending--
		task = mq.ring[mq.head]
		mq.ring[mq.head] = nil
		mq.head = (mq.head + 1) % len(mq.ring)
		mq.running[task.ID()] = task
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, nil
	}
	return task, mq.ctx, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		t, ok := mq.running[id]
		if !ok {
			return nil
		}
		delete(mq.running, id)
		mq.push(t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		delete(mq.running, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.withRLock(ctx, func() error {
		pending = mq.pending
		running = len(mq.running)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) Stop(ctx context.Context) error {
	mq.ctxCancel()
	return nil
}

func (mq *memQueue) String() string {
	return fmt.Sprintf("{Queue pending: %d running: %d head:%d tail:%d}", mq.pending, len(mq.running), mq.head, mq.tail)
}

// push stores t at the tail of the ring, growing it
// when full. It must be called holding the lock.
func (mq *memQueue) push(t *Task) {
	if mq.pending == len(mq.ring) {
		mq.rewind()
		mq.ring = append(mq.ring, t)
	} else {
		mq.ring[mq.tail] = t
		mq.tail = (mq.tail + 1) % len(mq.ring)
	}
	mq.pending++
}

// rewind rotates a full ring so that its head is at index 0
func (mq *memQueue) rewind() {
	if mq.head == 0 {
		return
	}
	mq.ring = append(mq.ring[mq.head:], mq.ring[0:mq.head]...)
	mq.head = 0
	mq.tail = 0
}

func (mq *memQueue) withLock(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	return f()
}

func (mq *memQueue) withRLock(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.RLock()
	defer mq.lock.RUnlock()
	return f()
}
