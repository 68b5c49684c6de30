package notify

import (
	"errors"
	"sync"
	"testing"
)

func TestPublishFanOut(t *testing.T) {
	b := New[int]()

	a := make(chan int, 4)
	c := make(chan int, 4)
	if err := b.Subscribe("a", a); err != nil {
		t.Fatal(err)
	}
	if err := b.Subscribe("c", c); err != nil {
		t.Fatal(err)
	}

	b.Publish(5)
	b.Publish(5)

	for _, ch := range []chan int{a, c} {
		for i := 0; i < 2; i++ {
			if got := <-ch; got != 5 {
				t.Fatalf("got %d, want 5", got)
			}
		}
	}

	if got := b.Published(); got != 2 {
		t.Fatalf("Published() = %d, want 2", got)
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	b := New[string]()
	ch := make(chan string, 1)
	if err := b.Subscribe("slow", ch); err != nil {
		t.Fatal(err)
	}

	b.Publish("first")
	b.Publish("second")
	b.Publish("third")

	st, err := b.Stats("slow")
	if err != nil {
		t.Fatal(err)
	}
	if st.Sent != 1 || st.Dropped != 2 {
		t.Fatalf("stats = %+v, want Sent=1 Dropped=2", st)
	}
	if got := <-ch; got != "first" {
		t.Fatalf("got %q, want first", got)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := New[int]()
	b.Publish(1)
	if got := b.Published(); got != 1 {
		t.Fatalf("Published() = %d, want 1", got)
	}
}

func TestSubscribeErrors(t *testing.T) {
	b := New[int]()
	ch := make(chan int, 1)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"nil channel", func() error { return b.Subscribe("x", nil) }, ErrNilChannel},
		{"duplicate", func() error {
			if err := b.Subscribe("dup", ch); err != nil {
				return err
			}
			return b.Subscribe("dup", ch)
		}, ErrSubscriberExists},
		{"unsubscribe unknown", func() error { return b.Unsubscribe("nobody") }, ErrSubscriberNotFound},
		{"stats unknown", func() error { _, err := b.Stats("nobody"); return err }, ErrSubscriberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New[int]()
	ch := make(chan int, 2)
	if err := b.Subscribe("a", ch); err != nil {
		t.Fatal(err)
	}
	if err := b.Unsubscribe("a"); err != nil {
		t.Fatal(err)
	}

	b.Publish(1)
	if len(ch) != 0 {
		t.Fatalf("unsubscribed channel received %d values", len(ch))
	}
	if ids := b.Subscribers(); len(ids) != 0 {
		t.Fatalf("Subscribers() = %v, want none", ids)
	}
}

func TestClose(t *testing.T) {
	b := New[int]()
	ch := make(chan int, 1)
	if err := b.Subscribe("a", ch); err != nil {
		t.Fatal(err)
	}

	b.Close()
	b.Close()

	b.Publish(1)
	if len(ch) != 0 {
		t.Fatal("closed bus delivered a value")
	}
	if err := b.Subscribe("b", ch); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("Subscribe after Close: got %v, want ErrBusClosed", err)
	}
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	b := New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				b.Publish(j)
			}
		}()
	}

	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		ch := make(chan int, 16)
		if err := b.Subscribe(id, ch); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()

	for _, id := range ids {
		st, err := b.Stats(id)
		if err != nil {
			t.Fatal(err)
		}
		if st.Sent > 16 {
			t.Fatalf("%s: Sent=%d exceeds channel capacity", id, st.Sent)
		}
	}
}

func BenchmarkPublish(b *testing.B) {
	bus := New[float64]()
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := bus.Subscribe(id, make(chan float64, 1)); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bus.Publish(float64(i))
	}
}
