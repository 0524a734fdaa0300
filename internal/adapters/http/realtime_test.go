package web

import (
	"sync"
	"testing"
	"time"

	chatDomain "clubhouse/internal/domain/chat"
)

func TestHub_NotifyMessageDeliversToRoomSubscribers(t *testing.T) {
	h := NewHub()
	s1 := &subscriber{send: make(chan messageEvent, 1)}
	s2 := &subscriber{send: make(chan messageEvent, 1)}
	h.attach("room1", s1)
	h.attach("room2", s2)

	h.NotifyMessage("room1", chatDomain.Message{
		ID:        "m1",
		RoomID:    "room1",
		SenderID:  "mbr1",
		Content:   "集合時間変更",
		CreatedAt: time.Now(),
	})

	select {
	case event := <-s1.send:
		if event.MessageID != "m1" || event.Content != "集合時間変更" {
			t.Errorf("event = %+v", event)
		}
	default:
		t.Fatal("room1 subscriber got nothing")
	}

	select {
	case event := <-s2.send:
		t.Errorf("room2 subscriber got %+v", event)
	default:
	}
}

func TestHub_SlowSubscriberDetached(t *testing.T) {
	h := NewHub()
	s := &subscriber{send: make(chan messageEvent)} // unbuffered, never drained
	h.attach("room1", s)

	h.NotifyMessage("room1", chatDomain.Message{ID: "m1", RoomID: "room1"})

	if n := h.SubscriberCount("room1"); n != 0 {
		t.Errorf("subscriber count = %d, want 0", n)
	}
	if _, open := <-s.send; open {
		t.Error("send channel left open after detach")
	}
}

func TestHub_ConcurrentNotifyDropsSlowSubscribersOnce(t *testing.T) {
	h := NewHub()
	for i := 0; i < 64; i++ {
		h.attach("room1", &subscriber{send: make(chan messageEvent)}) // unbuffered, never drained
	}

	var wg sync.WaitGroup
	panics := make(chan any, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics <- r
				}
			}()
			h.NotifyMessage("room1", chatDomain.Message{ID: "m1", RoomID: "room1"})
		}()
	}
	wg.Wait()
	close(panics)

	if r, ok := <-panics; ok {
		t.Fatalf("NotifyMessage panicked: %v", r)
	}
	if n := h.SubscriberCount("room1"); n != 0 {
		t.Errorf("subscriber count = %d, want 0", n)
	}
}

func TestHub_DetachRemovesEmptyRoom(t *testing.T) {
	h := NewHub()
	s := &subscriber{send: make(chan messageEvent, 1)}
	h.attach("room1", s)
	h.detach("room1", s)

	if n := h.SubscriberCount("room1"); n != 0 {
		t.Errorf("subscriber count = %d, want 0", n)
	}
}
