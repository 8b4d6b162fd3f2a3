package waste

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

func eventLogLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameWasteCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEventLog),
	)
}

// appendEvent stamps and inserts event inside tx. Timestamps never go backwards for a
// bin: if the clock is behind the bin's newest event, the newest timestamp is reused.
func (w *Waste) appendEvent(tx *gorm.DB, event *models.HistoryEvent) error {
	stamp := w.now()

	var latest models.HistoryEvent
	res := tx.Where("bin_id = ?", event.BinID).Order("timestamp desc").Limit(1).Find(&latest)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 && latest.Timestamp.After(stamp) {
		stamp = latest.Timestamp
	}

	event.ID = 0
	event.Timestamp = stamp
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	eventLogLogger().Info("Event appended", zap.Reflect("event", *event))
	return nil
}

// deleteEventsFor is only reachable through the bin removal cascade.
func (w *Waste) deleteEventsFor(tx *gorm.DB, binID string) (int64, error) {
	res := tx.Where("bin_id = ?", binID).Delete(&models.HistoryEvent{})
	return res.RowsAffected, res.Error
}

func (w *Waste) appendManual(event *models.HistoryEvent) error {
	logger := eventLogLogger()

	if strings.TrimSpace(event.BinID) == "" {
		return malformed("bin_id is required")
	}
	if strings.TrimSpace(string(event.EventType)) == "" {
		event.EventType = models.EventTypeManual
	}
	if event.CollectorName != nil && strings.TrimSpace(*event.CollectorName) == "" {
		event.CollectorName = nil
	}

	logger.Info("Received event", zap.Reflect("event", *event))

	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var bin models.Bin
		if err := tx.Select("bin_id").First(&bin, "bin_id = ?", event.BinID).Error; err != nil {
			return err
		}
		return w.appendEvent(tx, event)
	})
	return translate(err, "bin", event.BinID)
}

func (w *Waste) listFor(binID string) ([]models.HistoryEvent, error) {
	events := []models.HistoryEvent{}
	err := w.Db.Conn.
		Where("bin_id = ?", binID).
		Order("timestamp desc").
		Order("id desc").
		Find(&events).Error
	return events, err
}

type IEventLogImpl struct {
	waste *Waste
}

func (ie *IEventLogImpl) Append(event *models.HistoryEvent) error {
	return ie.waste.appendManual(event)
}

func (ie *IEventLogImpl) ListFor(binID string) ([]models.HistoryEvent, error) {
	return ie.waste.listFor(binID)
}

func (w *Waste) GetIEventLog() IEventLog {
	return &IEventLogImpl{waste: w}
}
