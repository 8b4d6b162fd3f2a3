package waste

import (
	"time"

	"liyu1981.xyz/prioribin-service/pkg/models"
)

type Dashboard struct {
	Collector        models.Collector   `json:"collector"`
	PriorityBins     []models.Bin       `json:"priority_bins"`
	ActiveCollectors []models.Collector `json:"active_collectors"`
}

// CollectorDashboard records a dashboard visit by name and returns what that collector
// needs to see: bins in Warning or Critical and the other collectors still active.
func (w *Waste) CollectorDashboard(name string, window time.Duration) (*Dashboard, error) {
	collector, err := w.Tracker.Touch(name, true)
	if err != nil {
		return nil, err
	}

	bins, err := w.Registry.ListPriority()
	if err != nil {
		return nil, err
	}

	active, err := w.Tracker.ListActive(window, w.now())
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Collector:        *collector,
		PriorityBins:     bins,
		ActiveCollectors: active,
	}, nil
}
