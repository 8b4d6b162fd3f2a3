package waste

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

const UnknownCollector = "Unknown"

func registryLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameWasteCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRegistry),
	)
}

func criticalAlertDescription(source models.UpdateSource, fillLevel int) string {
	if source == models.UpdateSourceManual {
		return fmt.Sprintf("Manual override set fill level to %d%%, bin is now Critical", fillLevel)
	}
	return fmt.Sprintf("Sensor detected fill level %d%%, bin is now Critical", fillLevel)
}

func (w *Waste) register(binID string, lat, lon float64) (*models.Bin, bool, error) {
	logger := registryLogger()

	binID = strings.TrimSpace(binID)
	if binID == "" {
		return nil, false, malformed("bin_id is required")
	}

	bin := models.Bin{
		BinID:       binID,
		Lat:         lat,
		Lon:         lon,
		FillLevel:   0,
		Status:      models.StatusNormal,
		LastUpdated: w.now(),
	}

	logger.Info("Received bin registration", zap.Reflect("bin", bin))

	created := false
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&bin)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return w.appendEvent(tx, &models.HistoryEvent{
			BinID:       binID,
			EventType:   models.EventTypeSystem,
			Description: "Bin initialized",
		})
	})
	if err != nil {
		return nil, false, err
	}

	if !created {
		logger.Info("Bin already registered, registration ignored", zap.String("bin_id", binID))
		existing, err := w.getBin(binID)
		return existing, false, err
	}

	logger.Info("Registered bin", zap.Reflect("bin", bin))
	w.publish(models.LiveEvent{Kind: models.LiveEventBinRegistered, BinID: binID, Bin: &bin})
	return &bin, true, nil
}

// updateFill applies a fill report. A Critical Alert is logged only on the transition
// into Critical, judged against the status read inside the same transaction. Two
// concurrent transitions on a store that does not serialize writers can both see the
// old status and both log an alert; that duplicate is accepted.
func (w *Waste) updateFill(binID string, fillLevel int, source models.UpdateSource) (models.Status, error) {
	logger := registryLogger()

	if !source.Valid() {
		return "", malformed("unknown update source %q", source)
	}

	newStatus := Classify(fillLevel)

	logger.Info("Received fill update for bin",
		zap.String("bin_id", binID),
		zap.Int("fill_level", fillLevel),
		zap.String("source", string(source)),
	)

	var bin models.Bin
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bin, "bin_id = ?", binID).Error; err != nil {
			return err
		}

		if bin.Status != models.StatusCritical && newStatus == models.StatusCritical {
			alert := models.HistoryEvent{
				BinID:       binID,
				EventType:   models.EventTypeCriticalAlert,
				Description: criticalAlertDescription(source, fillLevel),
			}

			logger.Info("Critical alert found", zap.Reflect("alert", alert))

			if err := w.appendEvent(tx, &alert); err != nil {
				return err
			}
		}

		bin.FillLevel = fillLevel
		bin.Status = newStatus
		bin.LastUpdated = w.now()

		return tx.Model(&models.Bin{}).Where("bin_id = ?", binID).Updates(map[string]any{
			"fill_level":   bin.FillLevel,
			"status":       bin.Status,
			"last_updated": bin.LastUpdated,
		}).Error
	})
	if err != nil {
		return "", translate(err, "bin", binID)
	}

	logger.Info("Updated fill for bin", zap.Reflect("bin", bin))
	w.publish(models.LiveEvent{Kind: models.LiveEventBinUpdated, BinID: binID, Bin: &bin})
	return newStatus, nil
}

func (w *Waste) collect(binID string, collectorName string) (*models.Bin, error) {
	logger := registryLogger()

	collectorName = strings.TrimSpace(collectorName)
	if collectorName == "" {
		collectorName = UnknownCollector
	}

	logger.Info("Received collection for bin", zap.String("bin_id", binID), zap.String("collector", collectorName))

	var bin models.Bin
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bin, "bin_id = ?", binID).Error; err != nil {
			return err
		}

		bin.FillLevel = 0
		bin.Status = models.StatusNormal
		bin.LastUpdated = w.now()

		if err := tx.Model(&models.Bin{}).Where("bin_id = ?", binID).Updates(map[string]any{
			"fill_level":   bin.FillLevel,
			"status":       bin.Status,
			"last_updated": bin.LastUpdated,
		}).Error; err != nil {
			return err
		}

		return w.appendEvent(tx, &models.HistoryEvent{
			BinID:         binID,
			EventType:     models.EventTypeCollection,
			Description:   fmt.Sprintf("Bin collected by %s", collectorName),
			CollectorName: &collectorName,
		})
	})
	if err != nil {
		return nil, translate(err, "bin", binID)
	}

	logger.Info("Collected bin", zap.Reflect("bin", bin))
	w.publish(models.LiveEvent{Kind: models.LiveEventBinCollected, BinID: binID, Bin: &bin})
	return &bin, nil
}

func (w *Waste) relocate(binID string, lat, lon float64) (*models.Bin, error) {
	logger := registryLogger()

	logger.Info("Received relocation for bin", zap.String("bin_id", binID), zap.Float64("lat", lat), zap.Float64("lon", lon))

	var bin models.Bin
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bin, "bin_id = ?", binID).Error; err != nil {
			return err
		}

		bin.Lat = lat
		bin.Lon = lon

		if err := tx.Model(&models.Bin{}).Where("bin_id = ?", binID).Updates(map[string]any{
			"lat": lat,
			"lon": lon,
		}).Error; err != nil {
			return err
		}

		return w.appendEvent(tx, &models.HistoryEvent{
			BinID:       binID,
			EventType:   models.EventTypeSystem,
			Description: fmt.Sprintf("Location updated to (%.6f, %.6f)", lat, lon),
		})
	})
	if err != nil {
		return nil, translate(err, "bin", binID)
	}

	logger.Info("Relocated bin", zap.Reflect("bin", bin))
	w.publish(models.LiveEvent{Kind: models.LiveEventBinRelocated, BinID: binID, Bin: &bin})
	return &bin, nil
}

// remove deletes the bin's history and then the bin in one transaction, so neither
// can be observed without the other.
func (w *Waste) remove(binID string) error {
	logger := registryLogger()

	logger.Info("Received removal for bin", zap.String("bin_id", binID))

	var removedEvents int64
	err := w.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var err error
		if removedEvents, err = w.deleteEventsFor(tx, binID); err != nil {
			return err
		}

		res := tx.Where("bin_id = ?", binID).Delete(&models.Bin{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translate(err, "bin", binID)
	}

	logger.Info("Removed bin", zap.String("bin_id", binID), zap.Int64("history_events", removedEvents))
	w.publish(models.LiveEvent{Kind: models.LiveEventBinRemoved, BinID: binID})
	return nil
}

func (w *Waste) getBin(binID string) (*models.Bin, error) {
	var bin models.Bin
	if err := w.Db.Conn.First(&bin, "bin_id = ?", binID).Error; err != nil {
		return nil, translate(err, "bin", binID)
	}
	return &bin, nil
}

func (w *Waste) listAll() ([]models.Bin, error) {
	bins := []models.Bin{}
	err := w.Db.Conn.
		Order("fill_level desc").
		Order("bin_id asc").
		Find(&bins).Error
	return bins, err
}

func (w *Waste) listPriority() ([]models.Bin, error) {
	bins := []models.Bin{}
	err := w.Db.Conn.
		Where("status IN ?", []models.Status{models.StatusWarning, models.StatusCritical}).
		Order("fill_level desc").
		Order("bin_id asc").
		Find(&bins).Error
	return bins, err
}

type IRegistryImpl struct {
	waste *Waste
}

func (ir *IRegistryImpl) Register(binID string, lat, lon float64) (*models.Bin, bool, error) {
	return ir.waste.register(binID, lat, lon)
}

func (ir *IRegistryImpl) UpdateFill(binID string, fillLevel int, source models.UpdateSource) (models.Status, error) {
	return ir.waste.updateFill(binID, fillLevel, source)
}

func (ir *IRegistryImpl) Collect(binID string, collectorName string) (*models.Bin, error) {
	return ir.waste.collect(binID, collectorName)
}

func (ir *IRegistryImpl) Relocate(binID string, lat, lon float64) (*models.Bin, error) {
	return ir.waste.relocate(binID, lat, lon)
}

func (ir *IRegistryImpl) Remove(binID string) error {
	return ir.waste.remove(binID)
}

func (ir *IRegistryImpl) GetBin(binID string) (*models.Bin, error) {
	return ir.waste.getBin(binID)
}

func (ir *IRegistryImpl) ListAll() ([]models.Bin, error) {
	return ir.waste.listAll()
}

func (ir *IRegistryImpl) ListPriority() ([]models.Bin, error) {
	return ir.waste.listPriority()
}

func (w *Waste) GetIRegistry() IRegistry {
	return &IRegistryImpl{waste: w}
}
