package registry

import "github.com/ernie/valkyrie-client/internal/events"

// The five handler shapes every version bundle is built from. Bundles use
// these constructors rather than writing out the []events.Event plumbing
// by hand each time.

// Consume decodes and discards payload, emitting no event.
func Consume[P any]() Handler {
	return func(payload any, state *HandlerState) ([]events.Event, error) {
		return nil, nil
	}
}

// UnitEvent decodes payload and emits exactly one event via fn.
func UnitEvent[P any](fn func(p P) events.Event) Handler {
	return func(payload any, state *HandlerState) ([]events.Event, error) {
		return []events.Event{fn(payload.(P))}, nil
	}
}

// OptionalEvent decodes payload and emits zero-or-one events depending
// on fn's second return value.
func OptionalEvent[P any](fn func(p P) (events.Event, bool)) Handler {
	return func(payload any, state *HandlerState) ([]events.Event, error) {
		ev, ok := fn(payload.(P))
		if !ok {
			return nil, nil
		}
		return []events.Event{ev}, nil
	}
}

// MultiEvent decodes payload and emits the full event vector fn returns.
func MultiEvent[P any](fn func(p P) []events.Event) Handler {
	return func(payload any, state *HandlerState) ([]events.Event, error) {
		return fn(payload.(P)), nil
	}
}

// Stateful decodes payload and mutates the registry-scoped transient
// state, optionally emitting events (used for inventory assembly,
// the original protocol).
func Stateful[P any](fn func(p P, state *HandlerState) ([]events.Event, error)) Handler {
	return func(payload any, state *HandlerState) ([]events.Event, error) {
		return fn(payload.(P), state)
	}
}
