// Package mocks provides mock implementations of the backend ports for handler and service tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockCircuitAPI(ctrl)
//	api.EXPECT().ListMembers(gomock.Any(), gomock.Any()).Return(members, nil)
package mocks

// Generate mock for CircuitAPI interface from internal/ports package.
// This creates MockCircuitAPI with methods for the identity, member, finance,
// announcement, stats and file endpoints.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=circuit_api_mock.go github.com/mcsa-hvr/circuit1021/internal/ports CircuitAPI
