package provider

import (
	"context"
	"fmt"
)

// CheckHealth reports the health of c when it implements HealthChecker.
// Converters without a health probe are assumed healthy.
func CheckHealth(ctx context.Context, c RateConverter) error {
	hc, ok := c.(HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.CheckHealth(ctx); err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	return nil
}
