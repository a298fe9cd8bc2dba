// Package mocks provides generated mock implementations for the client's
// port interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockAPI := mocks.NewMockPredictionAPI(ctrl)
//	mockAPI.EXPECT().GetPrediction(gomock.Any(), "J1").Return(pred, nil)
package mocks

// Generate mock for the PredictionAPI port from internal/core.
// This creates MockPredictionAPI with methods for all PredictionAPI interface
// methods: CreatePrediction, GetPrediction, ListPredictions, Balance, TopUp.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=prediction_api_mock.go github.com/frauddesk/frauddesk-cli/internal/core PredictionAPI
