package handlers

import (
	"context"

	"github.com/NomadCrew/trcs2-health/services"
	"github.com/NomadCrew/trcs2-health/types"
	"github.com/stretchr/testify/mock"
)

// MockHealthService implements services.HealthServiceInterface for handler tests.
type MockHealthService struct {
	mock.Mock
}

var _ services.HealthServiceInterface = (*MockHealthService)(nil)

func (m *MockHealthService) GetHealthStatus(ctx context.Context) types.HealthCheckResponse {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthCheckResponse)
}

func (m *MockHealthService) GetLivenessStatus(ctx context.Context) types.HealthCheckResponse {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthCheckResponse)
}

func (m *MockHealthService) GetReadinessStatus(ctx context.Context) types.HealthCheckResponse {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthCheckResponse)
}

func (m *MockHealthService) GetStartupStatus(ctx context.Context) types.HealthCheckResponse {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthCheckResponse)
}
