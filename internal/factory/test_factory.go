package factory

import (
	"time"

	"github.com/mcoot/palnotify/internal/config"
	"github.com/mcoot/palnotify/internal/dependencies/mocks"
	"github.com/mcoot/palnotify/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App wired from the given configuration with a
// mocked clock and a silent logger. The configuration is validated the
// same way production startup validates it.
func NewTestApp(appCfg config.Config) (*TestApp, error) {
	if err := appCfg.Validate(); err != nil {
		return nil, err
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	app := newWithDependencies(appCfg, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}, nil
}
