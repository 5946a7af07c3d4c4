package resilience

import "golang.org/x/sync/singleflight"

// Group deduplicates concurrent calls for the same key and hands every
// waiter the same typed result.
type Group[T any] struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (T, bool, error) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	value, _ := v.(T)
	return value, shared, err
}

// Forget drops an in-flight key so the next call starts a fresh load.
func (g *Group[T]) Forget(key string) {
	g.group.Forget(key)
}
