package roster

// Option configures the store.
type Option func(s *Store)

// WithLogger sets the sink receiving non-fatal store warnings.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithLookup sets the lookup used to locate records by identifier.
func WithLookup(l Lookup) Option {
	return func(s *Store) {
		s.lookup = l
	}
}
