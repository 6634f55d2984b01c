// Package notify reports configuration changes to subscribers.
//
// A reload produces a flat list of changed setting paths by diffing the
// previous and current settings maps. Subscribers register for a path
// prefix ("theme" sees "theme.accent") or for everything.
package notify

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was added or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was removed.
	ChangeDelete

	// ChangeReload is delivered once after every reload.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one changed setting.
type Change struct {
	// Path is the dot-separated setting path. Empty for reload events.
	Path string

	Type     ChangeType
	OldValue any
	NewValue any

	// Source names what caused the change, usually a file path.
	Source string
}

func (c Change) String() string {
	if c.Type == ChangeReload {
		return fmt.Sprintf("reload from %s", c.Source)
	}
	return fmt.Sprintf("%s %s: %v -> %v", c.Type, c.Path, c.OldValue, c.NewValue)
}

// Observer is called for each change.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.remove(s.id)
	}
}

type entry struct {
	id       uint64
	prefix   string
	observer Observer
}

// Notifier fans changes out to subscribers in subscription order.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below prefix.
// Reload events reach every observer.
func (n *Notifier) SubscribePath(prefix string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.entries = append(n.entries, entry{id: n.nextID, prefix: prefix, observer: observer})
	return &Subscription{id: n.nextID, notifier: n}
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Notify delivers change to every matching observer. Observers run outside
// the lock and may unsubscribe themselves.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var observers []Observer
	for _, e := range n.entries {
		if change.Type == ChangeReload || matches(e.prefix, change.Path) {
			observers = append(observers, e.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// Publish delivers every change in order followed by a single reload event.
func (n *Notifier) Publish(source string, changes []Change) {
	for _, c := range changes {
		c.Source = source
		n.Notify(c)
	}
	n.Notify(Change{Type: ChangeReload, Source: source})
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.entries {
		if e.id == id {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return
		}
	}
}

// matches reports whether path equals prefix or lies below it.
func matches(prefix, path string) bool {
	if prefix == "" || prefix == path {
		return true
	}
	return strings.HasPrefix(path, prefix+".")
}

// Diff compares two settings maps and returns the changed leaf paths in
// sorted order.
func Diff(oldCfg, newCfg map[string]any) []Change {
	before := make(map[string]any)
	after := make(map[string]any)
	flatten("", oldCfg, before)
	flatten("", newCfg, after)

	var changes []Change
	for path, nv := range after {
		ov, ok := before[path]
		if !ok || !reflect.DeepEqual(ov, nv) {
			changes = append(changes, Change{Path: path, Type: ChangeSet, OldValue: ov, NewValue: nv})
		}
	}
	for path, ov := range before {
		if _, ok := after[path]; !ok {
			changes = append(changes, Change{Path: path, Type: ChangeDelete, OldValue: ov})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			flatten(path, sub, out)
			continue
		}
		out[path] = v
	}
}
