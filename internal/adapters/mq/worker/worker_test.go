package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/padelmatch/internal/adapters/mq/queue"
	worker "github.com/okian/padelmatch/internal/adapters/mq/worker"
	logging "github.com/okian/padelmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func wait(t *testing.T, c *queue.Command) error {
	t.Helper()
	select {
	case err := <-c.Done():
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("command %s did not complete", c.Name)
		return nil
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a running worker", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		w := worker.NewInMemoryWorker(q, worker.WithName("test-worker"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When submitting a command", func() {
			ran := false
			c := queue.NewCommand(ctx, "set", func(context.Context) error {
				ran = true
				return nil
			})
			convey.So(q.Enqueue(ctx, c), convey.ShouldBeTrue)

			convey.Convey("Then it should run and report success", func() {
				convey.So(wait(t, c), convey.ShouldBeNil)
				convey.So(ran, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a command fails", func() {
			boom := errors.New("boom")
			c := queue.NewCommand(ctx, "fail", func(context.Context) error { return boom })
			q.Enqueue(ctx, c)

			convey.Convey("Then the error should reach the submitter", func() {
				convey.So(wait(t, c), convey.ShouldEqual, boom)
			})
		})

		convey.Convey("When a command panics", func() {
			bad := queue.NewCommand(ctx, "panic", func(context.Context) error { panic("kaboom") })
			good := queue.NewCommand(ctx, "after", func(context.Context) error { return nil })
			q.Enqueue(ctx, bad)
			q.Enqueue(ctx, good)

			convey.Convey("Then it should be reported and the worker should keep going", func() {
				convey.So(errors.Is(wait(t, bad), worker.ErrPanic), convey.ShouldBeTrue)
				convey.So(wait(t, good), convey.ShouldBeNil)
			})
		})

		convey.Convey("When many goroutines submit commands", func() {
			counter := 0
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c := queue.NewCommand(ctx, "inc", func(context.Context) error {
						counter++
						return nil
					})
					for !q.Enqueue(ctx, c) {
						time.Sleep(time.Millisecond)
					}
					_ = wait(t, c)
				}()
			}
			wg.Wait()

			convey.Convey("Then commands should run one at a time", func() {
				convey.So(counter, convey.ShouldEqual, 10)
			})
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	convey.Convey("Given a worker blocked on a slow command", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		w := worker.NewInMemoryWorker(q)
		ctx := context.Background()
		go w.Run(ctx)

		release := make(chan struct{})
		slow := queue.NewCommand(ctx, "slow", func(context.Context) error {
			<-release
			return nil
		})
		queued := queue.NewCommand(ctx, "queued", func(context.Context) error { return nil })
		q.Enqueue(ctx, slow)
		time.Sleep(20 * time.Millisecond)
		q.Enqueue(ctx, queued)

		convey.Convey("When shutting down", func() {
			shutdownErr := make(chan error, 1)
			go func() {
				sctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				shutdownErr <- w.Shutdown(sctx)
			}()
			time.Sleep(10 * time.Millisecond)
			close(release)

			convey.Convey("Then the running command should finish and the queued one should be failed", func() {
				convey.So(wait(t, slow), convey.ShouldBeNil)
				convey.So(<-shutdownErr, convey.ShouldBeNil)
				convey.So(errors.Is(wait(t, queued), worker.ErrStopped), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a worker whose queue is closed", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q)
		go w.Run(context.Background())
		_ = q.Close()

		convey.Convey("Then the loop should exit", func() {
			select {
			case <-w.Done():
				convey.So(true, convey.ShouldBeTrue)
			case <-time.After(time.Second):
				convey.So("worker still running", convey.ShouldBeEmpty)
			}
		})
	})
}
