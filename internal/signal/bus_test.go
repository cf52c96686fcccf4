package signal

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func recvID(t *testing.T, ch <-chan int64) int64 {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for signal")
		return 0
	}
}

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicOpenBusiness)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := bus.PublishOpenBusiness(42); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id := recvID(t, ch); id != 42 {
		t.Errorf("received id = %d", id)
	}
}

func TestTopicsAreIndependent(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	businesses, err := bus.Subscribe(ctx, TopicOpenBusiness)
	if err != nil {
		t.Fatal(err)
	}
	orders, err := bus.Subscribe(ctx, TopicOpenOrder)
	if err != nil {
		t.Fatal(err)
	}

	if err := bus.PublishOpenOrder(7); err != nil {
		t.Fatal(err)
	}
	if id := recvID(t, orders); id != 7 {
		t.Errorf("order signal id = %d", id)
	}

	select {
	case id := <-businesses:
		t.Errorf("business channel received order signal %d", id)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestZeroIDMeansNoPreselection(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicOpenOrder)
	if err != nil {
		t.Fatal(err)
	}

	if err := bus.PublishOpenOrder(0); err != nil {
		t.Fatal(err)
	}
	if id := recvID(t, ch); id != 0 {
		t.Errorf("expected 0 id to pass through, got %d", id)
	}
}

func TestCloseEndsSubscription(t *testing.T) {
	bus := NewBus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicOpenBusiness)
	if err != nil {
		t.Fatal(err)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after bus shutdown")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel did not close")
	}
}
