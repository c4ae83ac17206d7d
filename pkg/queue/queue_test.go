package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/drovo/backend/pkg/queue"
)

type echoJob struct {
	Val string
}

var echoCalls atomic.Int32

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	return errors.New("always fails")
}

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoCalls.Load() == before && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if echoCalls.Load() == before {
		t.Error("job was never processed")
	}
}

func TestFailedJobRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for len(queue.FailedJobs()) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if len(queue.FailedJobs()) == 0 {
		t.Error("expected at least one failed job")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&echoJob{Val: "c"}) //nolint:errcheck
		}()
	}
	wg.Wait()
}

type namedJob struct{}

func (namedJob) JobName() string { return "jobs.named" }
func (namedJob) Handle() error   { return nil }

func TestNamedJobUsesItsOwnName(t *testing.T) {
	queue.Register("jobs.named", func() queue.Job { return &namedJob{} })
	if err := queue.Dispatch(namedJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
}
