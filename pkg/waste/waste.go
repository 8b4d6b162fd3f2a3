//go:generate mockgen -source=waste.go -destination=mocks/mock_waste.go -package=mocks

package waste

import (
	"time"

	"liyu1981.xyz/prioribin-service/pkg/db"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

type IRegistry interface {
	Register(binID string, lat, lon float64) (*models.Bin, bool, error)
	UpdateFill(binID string, fillLevel int, source models.UpdateSource) (models.Status, error)
	Collect(binID string, collectorName string) (*models.Bin, error)
	Relocate(binID string, lat, lon float64) (*models.Bin, error)
	Remove(binID string) error
	GetBin(binID string) (*models.Bin, error)
	ListAll() ([]models.Bin, error)
	ListPriority() ([]models.Bin, error)
}

type IEventLog interface {
	Append(event *models.HistoryEvent) error
	ListFor(binID string) ([]models.HistoryEvent, error)
}

// ITracker keys collectors by a self-declared name. The name is an identity token
// only and carries no authentication.
type ITracker interface {
	Touch(name string, markActive bool) (*models.Collector, error)
	ReportLocation(name string, lat, lon float64) (*models.Collector, error)
	ListActive(window time.Duration, now time.Time) ([]models.Collector, error)
}

// Notifier receives committed changes. Implementations must not block.
type Notifier interface {
	Publish(event models.LiveEvent)
}

type Waste struct {
	Db       *db.DB
	Registry IRegistry
	EventLog IEventLog
	Tracker  ITracker
	Notifier Notifier

	// Now is the clock for event and activity timestamps, time.Now when nil.
	Now func() time.Time
}

type ServiceOpts struct {
	Registry IRegistry
	EventLog IEventLog
	Tracker  ITracker
	Notifier Notifier
}

// New wires the default database backed services onto store.
func New(store *db.DB) *Waste {
	w := &Waste{Db: store}
	return w.WithServices(ServiceOpts{
		Registry: w.GetIRegistry(),
		EventLog: w.GetIEventLog(),
		Tracker:  w.GetITracker(),
	})
}

func (w *Waste) WithServices(opts ServiceOpts) *Waste {
	if opts.Registry != nil {
		w.Registry = opts.Registry
	}
	if opts.EventLog != nil {
		w.EventLog = opts.EventLog
	}
	if opts.Tracker != nil {
		w.Tracker = opts.Tracker
	}
	if opts.Notifier != nil {
		w.Notifier = opts.Notifier
	}
	return w
}

func (w *Waste) now() time.Time {
	if w.Now != nil {
		return w.Now().UTC()
	}
	return time.Now().UTC()
}

// Clock is the core's current time in UTC, for callers that query by time window.
func (w *Waste) Clock() time.Time {
	return w.now()
}

func (w *Waste) publish(event models.LiveEvent) {
	if w.Notifier == nil {
		return
	}
	if event.At.IsZero() {
		event.At = w.now()
	}
	w.Notifier.Publish(event)
}
