package factory

import (
	"time"

	"github.com/mcoot/boggle-go/internal/dependencies/mocks"
	"github.com/mcoot/boggle-go/internal/services/board"
	"github.com/mcoot/boggle-go/internal/storage/memory"
	"github.com/mcoot/boggle-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockPublisher *mocks.MockPublisher
	MemoryStorage *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockPublisher := mocks.NewMockPublisher()

	app := newWithDependencies(store, mockClock, mockRandom, mockPublisher, Config{}, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockPublisher: mockPublisher,
		MemoryStorage: store,
	}
}

// QueueBoard makes the next generated board spell letters in row-major order.
// Letters missing from the pool are skipped.
func (t *TestApp) QueueBoard(letters string) {
	for _, l := range letters {
		if idx, ok := board.PoolIndex(l); ok {
			t.MockRandom.QueueIntn(idx)
		}
	}
}
