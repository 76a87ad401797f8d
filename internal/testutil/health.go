package testutil

import (
	"context"
	"fmt"
)

// MockHealthChecker is a mock health checker for handler tests
type MockHealthChecker struct {
	healthy bool
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	return &MockHealthChecker{healthy: healthy}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if !m.healthy {
		return fmt.Errorf("health check failed")
	}
	return nil
}
