package waste

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
	_ "liyu1981.xyz/prioribin-service/pkg/testing"
	"liyu1981.xyz/prioribin-service/pkg/waste/mocks"
)

func countEvents(events []models.HistoryEvent, eventType models.EventType) int {
	return common.Reducer(events, func(acc int, e models.HistoryEvent) int {
		if e.EventType == eventType {
			acc++
		}
		return acc
	}, 0)
}

func TestRegister(t *testing.T) {
	common.SetTestLoggerNop()

	w, clock := newTestWaste(t)
	binID := uuid.NewString()

	bin, created, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, binID, bin.BinID)
	assert.Equal(t, 0, bin.FillLevel)
	assert.Equal(t, models.StatusNormal, bin.Status)
	assert.True(t, bin.LastUpdated.Equal(clock.Now()))

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventTypeSystem, events[0].EventType)
	assert.Equal(t, "Bin initialized", events[0].Description)
	assert.Nil(t, events[0].CollectorName)
}

func TestRegisterDuplicateIsNoOp(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()

	_, created, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)
	require.True(t, created)

	_, err = w.Registry.UpdateFill(binID, 75, models.UpdateSourceSensor)
	require.NoError(t, err)

	existing, created, err := w.Registry.Register(binID, 9.0, 9.0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1.0, existing.Lat)
	assert.Equal(t, 2.0, existing.Lon)
	assert.Equal(t, 75, existing.FillLevel)

	bins, err := w.Registry.ListAll()
	require.NoError(t, err)
	assert.Len(t, bins, 1)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Equal(t, 1, countEvents(events, models.EventTypeSystem))
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	_, _, err := w.Registry.Register("  ", 1.0, 2.0)
	assert.ErrorIs(t, err, ErrMalformedInput)

	bins, err := w.Registry.ListAll()
	require.NoError(t, err)
	assert.Empty(t, bins)
}

func TestUpdateFillLogsOnlyCriticalEntries(t *testing.T) {
	common.SetTestLoggerNop()

	w, clock := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	expected := []models.Status{models.StatusNormal, models.StatusCritical, models.StatusNormal, models.StatusCritical}
	for i, level := range []int{50, 95, 40, 92} {
		clock.Advance(time.Minute)
		status, err := w.Registry.UpdateFill(binID, level, models.UpdateSourceSensor)
		require.NoError(t, err)
		assert.Equal(t, expected[i], status)
	}

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Equal(t, 2, countEvents(events, models.EventTypeCriticalAlert))

	// newest first
	assert.Contains(t, events[0].Description, "92")
	assert.Contains(t, events[1].Description, "95")
}

func TestUpdateFillNoDuplicateAlertWhileCritical(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	for _, level := range []int{91, 99, 100, 93} {
		_, err := w.Registry.UpdateFill(binID, level, models.UpdateSourceSensor)
		require.NoError(t, err)
	}

	// leaving Critical is silent as well
	status, err := w.Registry.UpdateFill(binID, 80, models.UpdateSourceSensor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, status)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Equal(t, 1, countEvents(events, models.EventTypeCriticalAlert))
	assert.Len(t, events, 2)

	bin, err := w.Registry.GetBin(binID)
	require.NoError(t, err)
	assert.Equal(t, 80, bin.FillLevel)
	assert.Equal(t, models.StatusWarning, bin.Status)
}

func TestUpdateFillWarningToCriticalAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	_, err = w.Registry.UpdateFill(binID, 75, models.UpdateSourceSensor)
	require.NoError(t, err)
	_, err = w.Registry.UpdateFill(binID, 90, models.UpdateSourceSensor)
	require.NoError(t, err)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Equal(t, 1, countEvents(events, models.EventTypeCriticalAlert))
}

func TestUpdateFillDescriptionTracksSource(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	sensorBin := uuid.NewString()
	manualBin := uuid.NewString()
	for _, id := range []string{sensorBin, manualBin} {
		_, _, err := w.Registry.Register(id, 1.0, 2.0)
		require.NoError(t, err)
	}

	_, err := w.Registry.UpdateFill(sensorBin, 96, models.UpdateSourceSensor)
	require.NoError(t, err)
	_, err = w.Registry.UpdateFill(manualBin, 97, models.UpdateSourceManual)
	require.NoError(t, err)

	sensorEvents, err := w.EventLog.ListFor(sensorBin)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sensorEvents[0].Description, "Sensor detected"))
	assert.Contains(t, sensorEvents[0].Description, "96")

	manualEvents, err := w.EventLog.ListFor(manualBin)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(manualEvents[0].Description, "Manual override"))
	assert.Contains(t, manualEvents[0].Description, "97")
}

func TestUpdateFillStatusAlwaysMatchesLevel(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	for _, level := range []int{-5, 0, 69, 70, 89, 90, 100, 130} {
		_, err := w.Registry.UpdateFill(binID, level, models.UpdateSourceManual)
		require.NoError(t, err)

		bin, err := w.Registry.GetBin(binID)
		require.NoError(t, err)
		assert.Equal(t, level, bin.FillLevel)
		assert.Equal(t, Classify(level), bin.Status)
	}
}

func TestUpdateFillEdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	_, err := w.Registry.UpdateFill(uuid.NewString(), 50, models.UpdateSourceSensor)
	assert.ErrorIs(t, err, ErrNotFound)

	binID := uuid.NewString()
	_, _, err = w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	_, err = w.Registry.UpdateFill(binID, 50, models.UpdateSource("Drone"))
	assert.ErrorIs(t, err, ErrMalformedInput)

	bin, err := w.Registry.GetBin(binID)
	require.NoError(t, err)
	assert.Equal(t, 0, bin.FillLevel)
}

func TestCollect(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	for _, level := range []int{95, 75, 0} {
		_, err := w.Registry.UpdateFill(binID, level, models.UpdateSourceSensor)
		require.NoError(t, err)

		before, err := w.EventLog.ListFor(binID)
		require.NoError(t, err)

		bin, err := w.Registry.Collect(binID, "Alice")
		require.NoError(t, err)
		assert.Equal(t, 0, bin.FillLevel)
		assert.Equal(t, models.StatusNormal, bin.Status)

		after, err := w.EventLog.ListFor(binID)
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		assert.Equal(t, models.EventTypeCollection, after[0].EventType)
		require.NotNil(t, after[0].CollectorName)
		assert.Equal(t, "Alice", *after[0].CollectorName)
	}

	stored, err := w.Registry.GetBin(binID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FillLevel)
	assert.Equal(t, models.StatusNormal, stored.Status)
}

func TestCollectDefaultsCollectorName(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	_, err = w.Registry.Collect(binID, "")
	require.NoError(t, err)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	require.NotNil(t, events[0].CollectorName)
	assert.Equal(t, UnknownCollector, *events[0].CollectorName)
}

func TestCollectNotFound(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	_, err := w.Registry.Collect(uuid.NewString(), "Alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRelocate(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)
	_, err = w.Registry.UpdateFill(binID, 80, models.UpdateSourceSensor)
	require.NoError(t, err)

	bin, err := w.Registry.Relocate(binID, 3.5, 4.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, bin.Lat)
	assert.Equal(t, 4.5, bin.Lon)
	assert.Equal(t, 80, bin.FillLevel)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeSystem, events[0].EventType)
	assert.Contains(t, events[0].Description, "3.500000")

	_, err = w.Registry.Relocate(uuid.NewString(), 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveCascadesHistory(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	otherID := uuid.NewString()
	for _, id := range []string{binID, otherID} {
		_, _, err := w.Registry.Register(id, 1.0, 2.0)
		require.NoError(t, err)
	}
	_, err := w.Registry.UpdateFill(binID, 95, models.UpdateSourceSensor)
	require.NoError(t, err)
	_, err = w.Registry.Collect(binID, "Bob")
	require.NoError(t, err)

	require.NoError(t, w.Registry.Remove(binID))

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = w.Registry.GetBin(binID)
	assert.ErrorIs(t, err, ErrNotFound)

	// other bins keep their history
	otherEvents, err := w.EventLog.ListFor(otherID)
	require.NoError(t, err)
	assert.Len(t, otherEvents, 1)
}

func TestRemoveNotFound(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	err := w.Registry.Remove(uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveRollsBackOnFailure(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)
	_, err = w.Registry.UpdateFill(binID, 99, models.UpdateSourceSensor)
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	err = w.Db.Conn.Callback().Delete().Before("gorm:delete").Register("test:fail_bin_delete", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "bins" {
			_ = tx.AddError(diskFull)
		}
	})
	require.NoError(t, err)

	err = w.Registry.Remove(binID)
	assert.ErrorIs(t, err, diskFull)

	// neither the bin nor its history went away
	_, err = w.Registry.GetBin(binID)
	assert.NoError(t, err)

	events, err := w.EventLog.ListFor(binID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestListAllAndPriority(t *testing.T) {
	common.SetTestLoggerNop()

	w, _ := newTestWaste(t)

	levels := map[string]int{"BIN-A": 10, "BIN-B": 95, "BIN-C": 72, "BIN-D": 50}
	for id, level := range levels {
		_, _, err := w.Registry.Register(id, 1.0, 2.0)
		require.NoError(t, err)
		_, err = w.Registry.UpdateFill(id, level, models.UpdateSourceSensor)
		require.NoError(t, err)
	}

	all, err := w.Registry.ListAll()
	require.NoError(t, err)
	ids := common.Mapper(all, func(b models.Bin) string { return b.BinID })
	assert.Equal(t, []string{"BIN-B", "BIN-C", "BIN-D", "BIN-A"}, ids)

	priority, err := w.Registry.ListPriority()
	require.NoError(t, err)
	ids = common.Mapper(priority, func(b models.Bin) string { return b.BinID })
	assert.Equal(t, []string{"BIN-B", "BIN-C"}, ids)
}

func TestEndToEndCriticalThenCollect(t *testing.T) {
	common.SetTestLoggerNop()

	w, clock := newTestWaste(t)

	_, created, err := w.Registry.Register("BIN-01", 1.0, 2.0)
	require.NoError(t, err)
	require.True(t, created)

	clock.Advance(time.Minute)
	status, err := w.Registry.UpdateFill("BIN-01", 92, models.UpdateSourceSensor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCritical, status)

	events, err := w.EventLog.ListFor("BIN-01")
	require.NoError(t, err)
	require.Equal(t, 1, countEvents(events, models.EventTypeCriticalAlert))
	assert.Contains(t, events[0].Description, "92")

	clock.Advance(time.Minute)
	bin, err := w.Registry.Collect("BIN-01", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 0, bin.FillLevel)
	assert.Equal(t, models.StatusNormal, bin.Status)

	events, err = w.EventLog.ListFor("BIN-01")
	require.NoError(t, err)
	require.Equal(t, 1, countEvents(events, models.EventTypeCollection))
	assert.Equal(t, models.EventTypeCollection, events[0].EventType)
	assert.Equal(t, "Alice", *events[0].CollectorName)
	assert.Equal(t, []models.EventType{models.EventTypeCollection, models.EventTypeCriticalAlert, models.EventTypeSystem},
		common.Mapper(events, func(e models.HistoryEvent) models.EventType { return e.EventType }))
}

func TestRegistryPublishesCommittedChanges(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, w, _, _, _ := GetMockWasteWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	notifier := mocks.NewMockNotifier(ctrl)
	w.WithServices(ServiceOpts{Notifier: notifier})

	binID := uuid.NewString()

	kinds := []models.LiveEventKind{}
	notifier.EXPECT().Publish(gomock.Any()).Do(func(event models.LiveEvent) {
		assert.Equal(t, binID, event.BinID)
		assert.False(t, event.At.IsZero())
		kinds = append(kinds, event.Kind)
	}).Times(4)

	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)
	_, err = w.Registry.UpdateFill(binID, 91, models.UpdateSourceSensor)
	require.NoError(t, err)
	_, err = w.Registry.Collect(binID, "Alice")
	require.NoError(t, err)
	require.NoError(t, w.Registry.Remove(binID))

	// failures publish nothing
	_, err = w.Registry.UpdateFill(binID, 91, models.UpdateSourceSensor)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []models.LiveEventKind{
		models.LiveEventBinRegistered,
		models.LiveEventBinUpdated,
		models.LiveEventBinCollected,
		models.LiveEventBinRemoved,
	}, kinds)
}

func TestUpdateFill_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	w, _ := newTestWaste(t)
	binID := uuid.NewString()
	_, _, err := w.Registry.Register(binID, 1.0, 2.0)
	require.NoError(t, err)

	_, err = w.Registry.UpdateFill(binID, 92, models.UpdateSourceSensor)
	require.NoError(t, err)

	logs := ParseLogs(buf)

	{
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			if lobj["category"] == "registry" &&
				lobj["logger"] == "waste_core" &&
				lobj["msg"] == "Critical alert found" &&
				lobj["alert"].(map[string]any)["bin_id"] == binID &&
				lobj["alert"].(map[string]any)["event_type"] == "Critical Alert" &&
				lobj["alert"].(map[string]any)["description"] == "Sensor detected fill level 92%, bin is now Critical" {
				found = true
			}
		}
		assert.True(t, found, "log not found")
	}

	{
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			if lobj["category"] == "registry" &&
				lobj["logger"] == "waste_core" &&
				lobj["msg"] == "Updated fill for bin" &&
				lobj["bin"].(map[string]any)["bin_id"] == binID &&
				lobj["bin"].(map[string]any)["status"] == "Critical" &&
				lobj["bin"].(map[string]any)["fill_level"] == 92.0 {
				found = true
			}
		}
		assert.True(t, found, "log not found")
	}

	{
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			if lobj["category"] == "eventlog" &&
				lobj["msg"] == "Event appended" &&
				lobj["event"].(map[string]any)["event_type"] == "Critical Alert" {
				found = true
			}
		}
		assert.True(t, found, "log not found")
	}
}
