package waste

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

// DefaultActiveWindow is how long after its last contact a collector counts as active.
const DefaultActiveWindow = 5 * time.Minute

func trackerLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameWasteCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryTracker),
	)
}

// touch gets or creates the collector. An existing collector's last_active only moves
// when markActive is set.
func (w *Waste) touch(name string, markActive bool) (*models.Collector, error) {
	logger := trackerLogger()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, malformed("collector name is required")
	}

	logger.Info("Received collector contact", zap.String("name", name), zap.Bool("mark_active", markActive))

	var collector models.Collector
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		now := w.now()

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Collector{Name: name, LastActive: now})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 && markActive {
			if err := tx.Model(&models.Collector{}).Where("name = ?", name).Update("last_active", now).Error; err != nil {
				return err
			}
		}

		return tx.First(&collector, "name = ?", name).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Touched collector", zap.Reflect("collector", collector))
	return &collector, nil
}

func (w *Waste) reportLocation(name string, lat, lon float64) (*models.Collector, error) {
	logger := trackerLogger()

	logger.Info("Received collector location", zap.String("name", name), zap.Float64("lat", lat), zap.Float64("lon", lon))

	var collector models.Collector
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Collector{}).Where("name = ?", name).Updates(map[string]any{
			"lat":         lat,
			"lon":         lon,
			"last_active": w.now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&collector, "name = ?", name).Error
	})
	if err != nil {
		return nil, translate(err, "collector", name)
	}

	logger.Info("Updated collector location", zap.Reflect("collector", collector))
	w.publish(models.LiveEvent{Kind: models.LiveEventCollectorLocation, Collector: &collector})
	return &collector, nil
}

// listActive filters at query time; activity is never stored as a flag.
func (w *Waste) listActive(window time.Duration, now time.Time) ([]models.Collector, error) {
	collectors := []models.Collector{}
	err := w.Db.Conn.
		Where("last_active >= ?", now.UTC().Add(-window)).
		Order("last_active desc").
		Find(&collectors).Error
	return collectors, err
}

type ITrackerImpl struct {
	waste *Waste
}

func (it *ITrackerImpl) Touch(name string, markActive bool) (*models.Collector, error) {
	return it.waste.touch(name, markActive)
}

func (it *ITrackerImpl) ReportLocation(name string, lat, lon float64) (*models.Collector, error) {
	return it.waste.reportLocation(name, lat, lon)
}

func (it *ITrackerImpl) ListActive(window time.Duration, now time.Time) ([]models.Collector, error) {
	return it.waste.listActive(window, now)
}

func (w *Waste) GetITracker() ITracker {
	return &ITrackerImpl{waste: w}
}
