package waste

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/prioribin-service/pkg/db"
	"liyu1981.xyz/prioribin-service/pkg/waste/mocks"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func GetMockWasteWithMemorySqliteDialector(t *testing.T, useMockRegistry, useMockEventLog, useMockTracker bool) (
	*gomock.Controller,
	*Waste,
	*mocks.MockIRegistry,
	*mocks.MockIEventLog,
	*mocks.MockITracker,
) {
	ctrl := gomock.NewController(t)

	mockIRegistry := mocks.NewMockIRegistry(ctrl)
	mockIEventLog := mocks.NewMockIEventLog(ctrl)
	mockITracker := mocks.NewMockITracker(ctrl)

	store, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	wasteInstance := &Waste{Db: store}

	registryService := wasteInstance.GetIRegistry()
	if useMockRegistry {
		registryService = mockIRegistry
	}

	eventLogService := wasteInstance.GetIEventLog()
	if useMockEventLog {
		eventLogService = mockIEventLog
	}

	trackerService := wasteInstance.GetITracker()
	if useMockTracker {
		trackerService = mockITracker
	}

	wasteInstance.WithServices(ServiceOpts{
		Registry: registryService,
		EventLog: eventLogService,
		Tracker:  trackerService,
	})

	return ctrl, wasteInstance, mockIRegistry, mockIEventLog, mockITracker
}

// newTestWaste is the common case: real services on a private store with a fixed clock.
func newTestWaste(t *testing.T) (*Waste, *fakeClock) {
	_, w, _, _, _ := GetMockWasteWithMemorySqliteDialector(t, false, false, false)
	clock := newFakeClock()
	w.Now = clock.Now
	return w, clock
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
