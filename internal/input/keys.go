package input

import "sync"

// maxOtherKeys caps how many unbound keys are remembered at once. They only
// feed State.Any, so a handful is plenty.
const maxOtherKeys = 8

// bound is every key name a scheme can resolve.
var bound = map[string]bool{
	KeyW: true, KeyA: true, KeyS: true, KeyD: true,
	KeyUp: true, KeyDown: true, KeyLeft: true, KeyRight: true,
	KeySpace: true, KeyQuit: true,
}

// Keys tracks key-down state for hosts that deliver discrete press and
// release events, possibly from another goroutine. Names come from the
// client, so the tracked set stays bounded whatever it sends.
type Keys struct {
	mu     sync.Mutex
	scheme Scheme
	down   map[string]bool
	other  map[string]bool // Unbound keys, at most maxOtherKeys
}

// NewKeys creates an empty key set for the given scheme.
func NewKeys(scheme Scheme) *Keys {
	return &Keys{
		scheme: scheme,
		down:   make(map[string]bool, len(bound)),
		other:  make(map[string]bool, maxOtherKeys),
	}
}

// Press marks a key as down.
func (k *Keys) Press(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch {
	case bound[name]:
		k.down[name] = true
	case len(k.other) < maxOtherKeys:
		k.other[name] = true
	}
}

// Release marks a key as up.
func (k *Keys) Release(name string) {
	k.mu.Lock()
	delete(k.down, name)
	delete(k.other, name)
	k.mu.Unlock()
}

// Reset releases every key, e.g. when the client loses focus and its
// release events will never arrive.
func (k *Keys) Reset() {
	k.mu.Lock()
	clear(k.down)
	clear(k.other)
	k.mu.Unlock()
}

// State snapshots the current keys.
func (k *Keys) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.scheme.Resolve(func(name string) bool { return k.down[name] }, len(k.down)+len(k.other) > 0)
}
