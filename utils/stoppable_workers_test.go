package utils

import (
	"context"
	"sync/atomic"
	"testing"

	"go.viam.com/test"

	"go.viam.com/markerviz/logging"
)

func TestStoppableWorkers(t *testing.T) {
	var stopped atomic.Int32
	worker := func(ctx context.Context) {
		<-ctx.Done()
		stopped.Add(1)
	}

	sw := NewStoppableWorkers(worker, worker)
	sw.AddWorkers(worker)
	test.That(t, sw.Context().Err(), test.ShouldBeNil)

	sw.Stop()
	test.That(t, stopped.Load(), test.ShouldEqual, int32(3))
	test.That(t, sw.Context().Err(), test.ShouldNotBeNil)

	// workers added after Stop never run
	sw.AddWorkers(worker)
	test.That(t, stopped.Load(), test.ShouldEqual, int32(3))
}

func TestStoppableWorkersParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sw := NewStoppableWorkersWithContext(ctx, func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})
	cancel()
	<-done
	sw.Stop()
}

func TestStoppableWorkersPanic(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	prev := logging.Global()
	logging.ReplaceGlobal(logger)
	defer logging.ReplaceGlobal(prev)

	var ran atomic.Int32
	sw := NewStoppableWorkers(func(ctx context.Context) {
		panic("worker failed")
	}, func(ctx context.Context) {
		<-ctx.Done()
		ran.Add(1)
	})
	sw.Stop()

	test.That(t, ran.Load(), test.ShouldEqual, int32(1))
	entries := logs.FilterMessage("panic while running function").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["error"], test.ShouldEqual, "worker failed")
}

func TestPanicCapturingGo(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	prev := logging.Global()
	logging.ReplaceGlobal(logger)
	defer logging.ReplaceGlobal(prev)

	done := make(chan struct{})
	PanicCapturingGo(func() {
		defer close(done)
		panic("oops")
	})
	<-done
	runCapturingPanic(func() { panic("again") })
	test.That(t, logs.FilterMessage("panic while running function").Len(), test.ShouldEqual, 2)
}
