package misc

import "time"

// Default returns def if v is the zero value of its type
func Default[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}

	return v
}

// DurationDefault returns def if d is not positive
func DurationDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}

	return d
}
