/*
Package sprout grows decision trees from datasets of records with
categorical attributes and a label. Trees estimate the probability of a
positive label for an unlabelled record.

Trees can be grown recursively with Grow, or by a number of workers
developing nodes concurrently from a queue.Queue with GrowConcurrently.
Both produce the same tree for the same dataset and policy.
*/
package sprout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/queue"
	"github.com/pbanos/sprout/tree"
	"go.uber.org/zap"
)

// DefaultEmptyQueueSleep is the time a worker waits before pulling again
// from a queue that has no pending tasks but still has running ones
const DefaultEmptyQueueSleep = 5 * time.Millisecond

// Seed takes a context, a dataset and a queue and sets everything
// up so that workers that consume from the queue afterwards
// grow a tree according to the records on the given dataset.
// Specifically it will create the root draft of the tree and
// push a task to develop it on the queue.
// The function returns the root draft, which can be frozen once
// the queue has been drained, or an error if the dataset is empty
// or inconsistent, or if the task cannot be pushed to the queue
// (in the amount of time allowed by the given context).
func Seed(ctx context.Context, s dataset.Dataset, q queue.Queue) (*tree.Draft, error) {
	attributeCount, err := s.AttributeCount()
	if err != nil {
		return nil, err
	}
	root := tree.NewDraft()
	task := &queue.Task{Draft: root, Dataset: s, AttributeCount: attributeCount}
	err = q.Push(ctx, task)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// BranchOut takes a context, a task, a policy and a logger,
// develops the draft in the task using the task's dataset
// and returns a set of tasks to develop the resulting
// children drafts or an error.
func BranchOut(ctx context.Context, task *queue.Task, p Policy, logger *zap.Logger) ([]*queue.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if task.Dataset.Count() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	d, err := develop(task.Dataset, task.AttributeCount, task.Depth, p, logger)
	if err != nil {
		return nil, err
	}
	if d.isLeaf() {
		return nil, task.Draft.MakeLeaf(d.probability, d.weight)
	}
	values := d.partition.Values()
	children, err := task.Draft.MakeStage(d.partition.Attribute, values)
	if err != nil {
		return nil, err
	}
	tasks := make([]*queue.Task, 0, len(values))
	for _, v := range values {
		tasks = append(tasks, &queue.Task{
			Draft:          children[v],
			Dataset:        d.partition.Groups[v],
			Depth:          task.Depth + 1,
			AttributeCount: task.AttributeCount,
		})
	}
	return tasks, nil
}

// Work takes a context, a queue, a policy, an emptyQueueSleep
// duration and a logger and enters a loop in which it:
//   - pulls a task from the queue,
//   - develops its draft using BranchOut
//   - pushes the tasks for the new child drafts into the queue
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, then the worker will sleep for the given
// emptyQueueSleep duration and then retry.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, q queue.Queue, p Policy, emptyQueueSleep time.Duration, logger *zap.Logger) error {
	for {
		task, tctx, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
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
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		mctx, cancel := mergeCtxCancel(tctx, ctx)
		err = workTask(mctx, task, q, p, logger)
		cancel()
		if err != nil {
			return err
		}
		err = ctx.Err()
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, q queue.Queue, p Policy, logger *zap.Logger) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := BranchOut(ctx, task, p, logger.With(zap.String("draft", task.ID())))
	if err != nil {
		return err
	}
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

func mergeCtxCancel(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	mctx, cancel := context.WithCancel(ctx1)
	go func() {
		select {
		case <-mctx.Done():
		case <-ctx2.Done():
			cancel()
		}
	}()
	return mctx, cancel
}

/*
GrowConcurrently takes a context, a dataset, a policy, a number of workers
and options and grows a tree by seeding an in-memory queue and running the
given number of workers on it. The first worker error cancels the rest and
is returned. The resulting tree is identical to the one Grow returns for
the same dataset and policy.
*/
func GrowConcurrently(ctx context.Context, s dataset.Dataset, p Policy, workers int, opts ...Option) (*tree.Tree, error) {
	o := newOptions(opts)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	q := queue.New()
	defer q.Stop(ctx)
	root, err := Seed(ctx, s, q)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	o.logger.Info("growing tree concurrently", zap.Int("records", s.Count()), zap.Int("workers", workers))
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		i := i
		go func() {
			defer wg.Done()
			err := Work(wctx, q, p, DefaultEmptyQueueSleep, o.logger.With(zap.Int("worker", i)))
			if err != nil {
				errs <- err
				cancel()
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	n, err := root.Freeze()
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	return tree.New(n, p.PositiveLabel, o.attributeNames), nil
}
