package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/diecast"
)

var _ Application = (*Mock)(nil)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	GarageFunc          func() (*diecast.Garage, error)
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	IncludeOldCasesFunc func() bool
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

// Garage returns a garage using the mock function or nil.
func (m *Mock) Garage() (*diecast.Garage, error) {
	if m.GarageFunc != nil {
		return m.GarageFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// IncludeOldCases returns the mock function's answer or false.
func (m *Mock) IncludeOldCases() bool {
	if m.IncludeOldCasesFunc != nil {
		return m.IncludeOldCasesFunc()
	}
	return false
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "none".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "none"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "source".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "source"
}
