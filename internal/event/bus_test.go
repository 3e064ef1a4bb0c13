package event

import (
	"sync"
	"testing"
)

func TestPublishDeliversToTopicSubscribers(t *testing.T) {
	b := NewBus()
	var got []Topic

	b.Subscribe(TopicShapeAdded, func(topic Topic, _ any) {
		got = append(got, topic)
	})
	b.Publish(TopicShapeAdded, "id-1")
	b.Publish(TopicShapeRemoved, "id-1")

	if len(got) != 1 || got[0] != TopicShapeAdded {
		t.Errorf("delivered = %v, want exactly one shape.added", got)
	}
}

func TestWildcardSubscription(t *testing.T) {
	b := NewBus()
	count := 0

	b.Subscribe(TopicAll, func(Topic, any) { count++ })
	b.Publish(TopicShapeAdded, nil)
	b.Publish(TopicHistoryRecorded, nil)

	if count != 2 {
		t.Errorf("wildcard handler ran %d times, want 2", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	count := 0

	cancel := b.Subscribe(TopicShapeAdded, func(Topic, any) { count++ })
	b.Publish(TopicShapeAdded, nil)
	cancel()
	b.Publish(TopicShapeAdded, nil)

	if count != 1 {
		t.Errorf("handler ran %d times after unsubscribe, want 1", count)
	}
}

func TestDeliveryOrderFollowsSubscription(t *testing.T) {
	b := NewBus()
	var order []int

	b.Subscribe(TopicShapeAdded, func(Topic, any) { order = append(order, 1) })
	b.Subscribe(TopicAll, func(Topic, any) { order = append(order, 2) })
	b.Subscribe(TopicShapeAdded, func(Topic, any) { order = append(order, 3) })

	b.Publish(TopicShapeAdded, nil)

	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStats(t *testing.T) {
	b := NewBus()
	b.Subscribe(TopicAll, func(Topic, any) {})
	b.Publish(TopicShapeAdded, nil)

	s := b.Stats()
	if s.Published != 1 || s.Delivered != 1 || s.Subscribed != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestConcurrentPublishCounts(t *testing.T) {
	b := NewBus()

	const publishers = 8
	const perPublisher = 100
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				b.Publish(TopicShapeModified, nil)
			}
		}()
	}
	wg.Wait()

	s := b.Stats()
	if s.Published != publishers*perPublisher {
		t.Errorf("Published = %d, want %d", s.Published, publishers*perPublisher)
	}
}
