package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several deployments share one Redis instance and need
// separate cache namespaces.
//
//	userKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed key for a decyclification result.
func (k *ScopedKeyer) ResultKey(graphHash, start string) string {
	return k.prefix + k.inner.ResultKey(graphHash, start)
}

// ScheduleKey generates a prefixed key for a schedule batch sequence.
func (k *ScopedKeyer) ScheduleKey(graphHash, mode string, cycles int) string {
	return k.prefix + k.inner.ScheduleKey(graphHash, mode, cycles)
}
