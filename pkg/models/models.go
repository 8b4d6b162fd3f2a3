package models

import "time"

// Status is the priority tier derived from a bin's fill level.
type Status string

const (
	StatusNormal   Status = "Normal"
	StatusWarning  Status = "Warning"
	StatusCritical Status = "Critical"
)

// Rank orders tiers by severity, Normal lowest.
func (s Status) Rank() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 0
	}
}

func (s Status) Valid() bool {
	return s == StatusNormal || s == StatusWarning || s == StatusCritical
}

// EventType is left open: new kinds can be logged without a schema change.
type EventType string

const (
	EventTypeSystem        EventType = "System"
	EventTypeCriticalAlert EventType = "Critical Alert"
	EventTypeCollection    EventType = "Collection"
	EventTypeManual        EventType = "Manual"
)

type UpdateSource string

const (
	UpdateSourceSensor UpdateSource = "Sensor"
	UpdateSourceManual UpdateSource = "Manual"
)

func (s UpdateSource) Valid() bool {
	return s == UpdateSourceSensor || s == UpdateSourceManual
}

type Bin struct {
	BinID       string    `gorm:"primaryKey;size:50" json:"bin_id"`
	Lat         float64   `gorm:"not null" json:"lat"`
	Lon         float64   `gorm:"not null" json:"lon"`
	FillLevel   int       `gorm:"not null;default:0;index" json:"fill_level"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'Normal';index;check:status IN ('Normal','Warning','Critical')" json:"status"`
	LastUpdated time.Time `json:"last_updated"`

	History []HistoryEvent `gorm:"foreignKey:BinID;references:BinID;constraint:OnDelete:CASCADE" json:"-"`
}

type HistoryEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BinID         string    `gorm:"index;size:50;not null" json:"bin_id"`
	EventType     EventType `gorm:"type:varchar(50);not null" json:"event_type"`
	Description   string    `json:"description"`
	CollectorName *string   `gorm:"size:100" json:"collector_name,omitempty"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
}

type Collector struct {
	Name       string    `gorm:"primaryKey;size:100" json:"name"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	LastActive time.Time `gorm:"index" json:"last_active"`
}

type LiveEventKind string

const (
	LiveEventBinRegistered     LiveEventKind = "bin_registered"
	LiveEventBinUpdated        LiveEventKind = "bin_updated"
	LiveEventBinCollected      LiveEventKind = "bin_collected"
	LiveEventBinRelocated      LiveEventKind = "bin_relocated"
	LiveEventBinRemoved        LiveEventKind = "bin_removed"
	LiveEventCollectorLocation LiveEventKind = "collector_location"
)

// LiveEvent is pushed to dashboards after a mutation commits.
type LiveEvent struct {
	Kind      LiveEventKind `json:"kind"`
	BinID     string        `json:"bin_id,omitempty"`
	Bin       *Bin          `json:"bin,omitempty"`
	Collector *Collector    `json:"collector,omitempty"`
	At        time.Time     `json:"at"`
}
