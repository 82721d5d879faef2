package sources

import (
	"context"
	"testing"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

type stubAdapter struct {
	name    string
	notices []notice.Notice
	delay   time.Duration
	calls   int
}

func (a *stubAdapter) Name() string { return a.name }

func (a *stubAdapter) Fetch(ctx context.Context) []notice.Notice {
	a.calls++
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	return a.notices
}

func stubNotice(id, title string) notice.Notice {
	return notice.Notice{ID: id, Title: title, URL: "https://example.com/" + id}
}

func TestAggregator_ConcatenatesInRegistrationOrder(t *testing.T) {
	// The slow first adapter must still contribute its results first.
	first := &stubAdapter{
		name:    "slow",
		delay:   50 * time.Millisecond,
		notices: []notice.Notice{stubNotice("a1", "느린 소스 공고")},
	}
	second := &stubAdapter{
		name:    "fast",
		notices: []notice.Notice{stubNotice("b1", "빠른 소스 공고"), stubNotice("b2", "빠른 소스 공고 2")},
	}

	combined := NewAggregator(first, second).Run(context.Background())

	if len(combined) != 3 {
		t.Fatalf("Expected 3 combined notices, got %d", len(combined))
	}
	if combined[0].ID != "a1" || combined[1].ID != "b1" || combined[2].ID != "b2" {
		t.Errorf("Results out of registration order: %s, %s, %s",
			combined[0].ID, combined[1].ID, combined[2].ID)
	}
}

func TestAggregator_EmptyAdapterContributesNothing(t *testing.T) {
	empty := &stubAdapter{name: "empty"}
	full := &stubAdapter{name: "full", notices: []notice.Notice{stubNotice("c1", "공고")}}

	combined := NewAggregator(empty, full).Run(context.Background())

	if len(combined) != 1 {
		t.Errorf("Expected 1 notice, got %d", len(combined))
	}
}

func TestAggregator_RunsEveryAdapterOnce(t *testing.T) {
	adapters := []*stubAdapter{
		{name: "one"}, {name: "two"}, {name: "three"},
	}

	NewAggregator(adapters[0], adapters[1], adapters[2]).Run(context.Background())

	for _, a := range adapters {
		if a.calls != 1 {
			t.Errorf("Adapter %s called %d times, expected 1", a.name, a.calls)
		}
	}
}

func TestAggregator_NoAdapters(t *testing.T) {
	if combined := NewAggregator().Run(context.Background()); len(combined) != 0 {
		t.Errorf("Expected no notices without adapters, got %d", len(combined))
	}
}
