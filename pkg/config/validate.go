package config

import (
	"cmp"
	"fmt"
	"time"
)

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateNonNegativeDuration rejects negative durations. Zero usually means "disabled".
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", d)
	}
	return nil
}

// ValidateRange checks min <= v <= max.
func ValidateRange[T cmp.Ordered](v, minimum, maximum T) error {
	if minimum > maximum {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", minimum, maximum)
	}
	if v < minimum || v > maximum {
		return fmt.Errorf("must be between %v and %v, got %v", minimum, maximum, v)
	}
	return nil
}
