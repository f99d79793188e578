package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"wearable-server/internal/model"
)

type testWriter struct {
	mu     sync.Mutex
	writes [][]byte
	fail   bool
}

func (w *testWriter) Write(message []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("write failed")
	}
	w.writes = append(w.writes, message)
	return nil
}

func (w *testWriter) Close() error { return nil }

func (w *testWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

func (w *testWriter) sample(t *testing.T, i int) model.TelemetrySample {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()
	var s model.TelemetrySample
	if err := json.Unmarshal(w.writes[i], &s); err != nil {
		t.Fatalf("unmarshal write %d: %v", i, err)
	}
	return s
}

func TestHub_RegisterDeliversLatestImmediately(t *testing.T) {
	h := New()
	w := &testWriter{}
	h.Register(&Connection{Writer: w})

	if w.count() != 1 {
		t.Fatalf("expected exactly 1 immediate delivery, got %d", w.count())
	}
	// No write has happened yet, so the default sample is delivered.
	got := w.sample(t, 0)
	if got.HeartRate != 72 || got.Temperature != 36.6 {
		t.Fatalf("expected default sample, got %+v", got)
	}
}

func TestHub_PublishInOrderAndLastWriteWins(t *testing.T) {
	h := New()
	w := &testWriter{}
	h.Register(&Connection{Writer: w})

	for i := 1; i <= 3; i++ {
		h.Publish(model.TelemetrySample{HeartRate: float64(60 + i), Temperature: 37, UserID: "u"})
	}

	if w.count() != 4 { // registration push + 3 publishes
		t.Fatalf("expected 4 deliveries, got %d", w.count())
	}
	for i := 1; i <= 3; i++ {
		if got := w.sample(t, i).HeartRate; got != float64(60+i) {
			t.Fatalf("delivery %d: expected heart rate %d, got %v", i, 60+i, got)
		}
	}
	if h.Latest().HeartRate != 63 {
		t.Fatalf("expected latest heart rate 63, got %v", h.Latest().HeartRate)
	}
}

func TestHub_DeadObserverDoesNotBlockOthers(t *testing.T) {
	h := New()
	dead := &testWriter{fail: true}
	alive := &testWriter{}
	h.Register(&Connection{Writer: dead})
	h.Register(&Connection{Writer: alive})

	h.Publish(model.TelemetrySample{HeartRate: 80})
	h.Publish(model.TelemetrySample{HeartRate: 81})

	if alive.count() != 3 {
		t.Fatalf("expected 3 deliveries to the live observer, got %d", alive.count())
	}
	if alive.sample(t, 2).HeartRate != 81 {
		t.Fatalf("expected last delivery 81, got %v", alive.sample(t, 2).HeartRate)
	}
}

func TestHub_UnregisterStopsDeliveryAndIsIdempotent(t *testing.T) {
	h := New()
	w := &testWriter{}
	conn := &Connection{Writer: w}
	h.Register(conn)

	h.Unregister(conn)
	h.Unregister(conn) // never an error to repeat
	h.Unregister(&Connection{Writer: &testWriter{}}) // or for a conn never registered

	h.Publish(model.TelemetrySample{HeartRate: 90})
	if w.count() != 1 {
		t.Fatalf("expected no deliveries after unregister, got %d", w.count())
	}
}

func TestHub_ConcurrentPublishAndLifecycle(t *testing.T) {
	h := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn := &Connection{Writer: &testWriter{}}
			h.Register(conn)
			h.Unregister(conn)
		}()
		go func(i int) {
			defer wg.Done()
			h.Publish(model.TelemetrySample{HeartRate: float64(i)})
		}(i)
	}
	wg.Wait()
}
