package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe(4)
	b, cancelB := h.Subscribe(4)
	defer cancelA()
	defer cancelB()

	n := Notification{Message: "Unit 101 added", Kind: KindSuccess, Duration: 3 * time.Second}
	h.Publish(n)

	assert.Equal(t, n, <-a)
	assert.Equal(t, n, <-b)
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)
	defer cancel()

	h.Publish(Notification{Message: "first"})
	h.Publish(Notification{Message: "second"}) // buffer full, dropped

	got := <-ch
	assert.Equal(t, "first", got.Message)
	select {
	case n := <-ch:
		t.Fatalf("expected no further events, got %q", n.Message)
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)

	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open, "unsubscribing closes the channel")

	// publishing after unsubscribe must not panic on the closed channel
	h.Publish(Notification{Message: "after"})
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Last()
	assert.False(t, ok)

	r.Publish(Notification{Message: "one", Kind: KindInfo})
	r.Publish(Notification{Message: "two", Kind: KindError})

	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "one", events[0].Message)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "two", last.Message)
}

func TestNotificationJSON(t *testing.T) {
	data, err := json.Marshal(Notification{Message: "Unit 101 added", Kind: KindSuccess, Duration: 3 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Unit 101 added","kind":"success","duration":3000000000}`, string(data))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard{}.Publish(Notification{Message: "into the void"})
	})
}
