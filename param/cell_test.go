package param

import (
	"errors"
	"sync"
	"testing"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/notify"
)

func TestSetThenGet(t *testing.T) {
	c := NewCell[int16](3)
	if got := c.Get(); got != 3 {
		t.Fatalf("Get() = %d, want 3", got)
	}

	c.Set(5)
	if got := c.Get(); got != 5 {
		t.Fatalf("Get() = %d, want 5", got)
	}
}

func TestSetNotifiesEvenWhenUnchanged(t *testing.T) {
	c := NewCell[int32](5)
	sub, err := c.Subscribe(4)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	c.Set(5)

	select {
	case v := <-sub.C:
		if v != 5 {
			t.Fatalf("notification = %d, want 5", v)
		}
	default:
		t.Fatal("no notification for unchanged value")
	}

	select {
	case v := <-sub.C:
		t.Fatalf("extra notification %d", v)
	default:
	}

	if got := c.Notifications(); got != 1 {
		t.Fatalf("Notifications() = %d, want 1", got)
	}
}

func TestConstructionDoesNotNotify(t *testing.T) {
	c := NewCell(1.5)
	if got := c.Notifications(); got != 0 {
		t.Fatalf("Notifications() = %d, want 0", got)
	}
}

func TestSubscriptionClose(t *testing.T) {
	c := NewCell[uint8](0)
	sub, err := c.Subscribe(0)
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID() == "" {
		t.Fatal("empty subscription id")
	}

	sub.Close()
	sub.Close()

	c.Set(1)
	if len(sub.C) != 0 {
		t.Fatal("closed subscription received a value")
	}
}

func TestSlowSubscriberDoesNotBlockSet(t *testing.T) {
	c := NewCell(dtype.C[int16](0, 0))
	sub, err := c.Subscribe(1)
	if err != nil {
		t.Fatal(err)
	}

	for i := int16(0); i < 10; i++ {
		c.Set(dtype.C(i, -i))
	}

	if got := sub.Dropped(); got != 9 {
		t.Fatalf("Dropped() = %d, want 9", got)
	}
	if got := <-sub.C; got != dtype.C[int16](0, 0) {
		t.Fatalf("first notification = %v, want (0,0)", got)
	}
	if got := c.Get(); got != dtype.C[int16](9, -9) {
		t.Fatalf("Get() = %v, want (9,-9)", got)
	}
}

func TestNotifyExternalChannel(t *testing.T) {
	c := NewCell[float32](0)
	ch := make(chan float32, 1)
	if err := c.Notify("probe", ch); err != nil {
		t.Fatal(err)
	}
	if err := c.Notify("probe", ch); !errors.Is(err, notify.ErrSubscriberExists) {
		t.Fatalf("duplicate Notify: got %v", err)
	}

	c.Set(2.5)
	if got := <-ch; got != 2.5 {
		t.Fatalf("got %v, want 2.5", got)
	}
	if err := c.Unsubscribe("probe"); err != nil {
		t.Fatal(err)
	}
}

func TestCloseDetachesObservers(t *testing.T) {
	c := NewCell(1)
	sub, err := c.Subscribe(1)
	if err != nil {
		t.Fatal(err)
	}

	c.Close()
	c.Set(2)

	if len(sub.C) != 0 {
		t.Fatal("observer notified after Close")
	}
	if got := c.Get(); got != 2 {
		t.Fatalf("Get() = %d, want 2", got)
	}
	if _, err := c.Subscribe(1); !errors.Is(err, notify.ErrBusClosed) {
		t.Fatalf("Subscribe after Close: got %v", err)
	}
}

// Readers must never see a torn complex value: both lanes always come
// from the same Set.
func TestConcurrentGetSet(t *testing.T) {
	c := NewCell(complex(0, 0))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			f := float64(i)
			c.Set(complex(f, -f))
		}
	}()

	for i := 0; i < 100000; i++ {
		v := c.Get()
		if real(v) != -imag(v) {
			close(stop)
			wg.Wait()
			t.Fatalf("torn read: %v", v)
		}
	}
	close(stop)
	wg.Wait()
}

func TestConcurrentSetLastNotificationMatchesGet(t *testing.T) {
	const writers, perWriter = 8, 200

	c := NewCell[int](-1)
	sub, err := c.Subscribe(writers * perWriter)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				c.Set(w*perWriter + i)
			}
		}(w)
	}
	wg.Wait()

	if n := c.Notifications(); n != writers*perWriter {
		t.Fatalf("Notifications() = %d, want %d", n, writers*perWriter)
	}

	last := -1
	for i := 0; i < writers*perWriter; i++ {
		last = <-sub.C
	}
	if got := c.Get(); last != got {
		t.Fatalf("last notification %d, Get() = %d", last, got)
	}
}

func BenchmarkGet(b *testing.B) {
	c := NewCell[float32](1)
	b.ReportAllocs()
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += c.Get()
	}
	_ = sink
}
