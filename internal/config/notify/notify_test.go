package notify

import (
	"strings"
	"testing"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeDelete, "delete"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestChange_String(t *testing.T) {
	c := Change{Path: "theme.accent", Type: ChangeSet, OldValue: "#000000", NewValue: "#ff0000"}
	if got := c.String(); got != "set theme.accent: #000000 -> #ff0000" {
		t.Errorf("String() = %q", got)
	}
	r := Change{Type: ChangeReload, Source: "mathkey.toml"}
	if !strings.Contains(r.String(), "mathkey.toml") {
		t.Errorf("String() = %q", r.String())
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var received int
	sub := n.Subscribe(func(change Change) { received++ })

	n.Notify(Change{Path: "layout.spacing", Type: ChangeSet})
	if received != 1 {
		t.Fatalf("received = %d, want 1", received)
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Notify(Change{Path: "layout.spacing", Type: ChangeSet})
	if received != 1 {
		t.Error("unsubscribed observer received notification")
	}
	if n.Len() != 0 {
		t.Errorf("Len = %d, want 0", n.Len())
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()

	var themeChanges, layoutChanges int
	n.SubscribePath("theme", func(Change) { themeChanges++ })
	n.SubscribePath("layout.spacing", func(Change) { layoutChanges++ })

	n.Notify(Change{Path: "theme.accent", Type: ChangeSet})
	n.Notify(Change{Path: "theme", Type: ChangeSet})
	n.Notify(Change{Path: "themes.x", Type: ChangeSet})
	n.Notify(Change{Path: "layout.spacingX", Type: ChangeSet})
	n.Notify(Change{Path: "layout.spacing", Type: ChangeSet})

	if themeChanges != 2 {
		t.Errorf("theme changes = %d, want 2", themeChanges)
	}
	if layoutChanges != 1 {
		t.Errorf("layout changes = %d, want 1", layoutChanges)
	}
}

func TestNotifier_ReloadReachesAll(t *testing.T) {
	n := New()

	var got []string
	n.SubscribePath("theme", func(c Change) { got = append(got, "theme:"+c.Type.String()) })
	n.Subscribe(func(c Change) { got = append(got, "all:"+c.Type.String()) })

	n.Publish("cfg.toml", []Change{{Path: "layout.spacing", Type: ChangeSet}})

	want := []string{"all:set", "theme:reload", "all:reload"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("deliveries = %v, want %v", got, want)
	}
}

func TestNotifier_PublishSetsSource(t *testing.T) {
	n := New()
	var sources []string
	n.Subscribe(func(c Change) { sources = append(sources, c.Source) })

	n.Publish("a.toml", []Change{{Path: "x", Type: ChangeSet}, {Path: "y", Type: ChangeDelete}})
	if len(sources) != 3 {
		t.Fatalf("deliveries = %d, want 3", len(sources))
	}
	for _, s := range sources {
		if s != "a.toml" {
			t.Errorf("source = %q", s)
		}
	}
}

func TestNotifier_UnsubscribeDuringNotify(t *testing.T) {
	n := New()
	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(Change) {
		calls++
		sub.Unsubscribe()
	})

	n.Notify(Change{Path: "a"})
	n.Notify(Change{Path: "a"})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDiff(t *testing.T) {
	oldCfg := map[string]any{
		"layout": map[string]any{"spacing": int64(0), "barRatio": 0.0},
		"theme":  map[string]any{"accent": "#000000"},
		"keymap": map[string]any{"Ctrl+F": "fraction"},
	}
	newCfg := map[string]any{
		"layout": map[string]any{"spacing": int64(2), "barRatio": 0.0},
		"theme":  map[string]any{"accent": "#000000"},
		"editor": map[string]any{"showStatus": false},
	}

	changes := Diff(oldCfg, newCfg)
	var got []string
	for _, c := range changes {
		got = append(got, c.Type.String()+" "+c.Path)
	}
	want := []string{"set editor.showStatus", "delete keymap.Ctrl+F", "set layout.spacing"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Diff = %v, want %v", got, want)
	}
	if changes[2].OldValue != int64(0) || changes[2].NewValue != int64(2) {
		t.Errorf("layout.spacing change = %+v", changes[2])
	}
}

func TestDiff_Identical(t *testing.T) {
	cfg := map[string]any{"a": map[string]any{"b": []any{1, 2}}}
	if changes := Diff(cfg, cfg); len(changes) != 0 {
		t.Errorf("Diff of identical maps = %v", changes)
	}
	if changes := Diff(nil, nil); len(changes) != 0 {
		t.Errorf("Diff(nil, nil) = %v", changes)
	}
}
