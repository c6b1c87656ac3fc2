package factory

import (
	"time"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/mocks"
	"github.com/uwoguessr/uwoguessr-server/internal/storage/memory"
	"github.com/uwoguessr/uwoguessr-server/internal/testutil"
)

// TestTokenSecret is a fixed signing secret for tests
const TestTokenSecret = "test-secret-0123456789abcdef"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Tests run in UTC so expectations do not shift with the deployment timezone.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, time.UTC, TestTokenSecret, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
