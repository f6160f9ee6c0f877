package dsl

import (
	"context"
	stderrors "errors"
	"testing"
)

type ctxKey struct{}

type recorder struct {
	names   []string
	results []RenderResult
}

func (r *recorder) BeginRender(ctx context.Context, name string) (context.Context, func(RenderResult)) {
	r.names = append(r.names, name)
	return context.WithValue(ctx, ctxKey{}, name), func(res RenderResult) {
		r.results = append(r.results, res)
	}
}

func TestObserverNotifiedOncePerOutermostRender(t *testing.T) {
	rec := &recorder{}
	c := NewContext(WithObserver(rec))

	div, err := c.Render("div", func() (any, error) {
		if got := c.StdContext().Value(ctxKey{}); got != "div" {
			t.Errorf("StdContext value = %v, want div", got)
		}
		return c.Render("span", text("hi"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.names) != 1 || rec.names[0] != "div" {
		t.Fatalf("names = %v, want [div]", rec.names)
	}
	if len(rec.results) != 1 {
		t.Fatalf("results = %d, want 1", len(rec.results))
	}
	res := rec.results[0]
	if res.Element != div || res.Err != nil {
		t.Errorf("result = %+v", res)
	}
	if res.Elements != 2 {
		t.Errorf("Elements = %d, want 2", res.Elements)
	}
	if c.StdContext().Value(ctxKey{}) != nil {
		t.Error("StdContext should be restored after the render")
	}
}

func TestObserverSeesErrors(t *testing.T) {
	rec := &recorder{}
	c := NewContext(WithObserver(rec))

	if _, err := c.Scope(func() (any, error) { return 7, nil }); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.results) != 1 || !stderrors.Is(rec.results[0].Err, ErrImproperRender) {
		t.Fatalf("results = %+v", rec.results)
	}
	if rec.names[0] != "scope" {
		t.Errorf("name = %q, want scope", rec.names[0])
	}
}

func TestObserverSeesPanics(t *testing.T) {
	rec := &recorder{}
	c := NewContext(WithObserver(rec))

	func() {
		defer func() { _ = recover() }()
		_, _ = c.Render("div", func() (any, error) { panic("boom") })
	}()

	if len(rec.results) != 1 || rec.results[0].Err == nil {
		t.Errorf("results = %+v, want one failed result", rec.results)
	}
}

func TestObserversFanOut(t *testing.T) {
	var order []string
	mk := func(id string) Observer {
		return ObserverFunc(func(ctx context.Context, name string) (context.Context, func(RenderResult)) {
			order = append(order, "begin "+id)
			return ctx, func(RenderResult) { order = append(order, "end "+id) }
		})
	}
	c := NewContext(WithObserver(Observers{mk("a"), nil, mk("b")}))

	if _, err := c.Tag("hr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"begin a", "begin b", "end b", "end a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
