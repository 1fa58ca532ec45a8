package model

import "time"

// MovementLog is one immutable telemetry ping. Rows are only ever
// inserted; "latest" and "trail" reads are the whole query surface.
type MovementLog struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	AssignmentID uint    `gorm:"column:assignment_id;index:idx_movement_assignment;not null" json:"assignmentId"`
	Latitude     float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude;not null" json:"longitude"`

	Accuracy     *float64 `gorm:"column:accuracy" json:"accuracy"`  // metres
	Speed        *float64 `gorm:"column:speed" json:"speed"`        // m/s
	Heading      *float64 `gorm:"column:heading" json:"heading"`    // degrees
	Altitude     *float64 `gorm:"column:altitude" json:"altitude"`  // metres
	Provider     *string  `gorm:"column:provider;size:40" json:"provider"`
	Battery      *int     `gorm:"column:battery" json:"battery"`    // percent
	MockLocation bool     `gorm:"column:mock_location" json:"mockLocation"`

	// Server-assigned; client timestamps are not trusted.
	RecordedAt time.Time `gorm:"column:recorded_at;index:idx_movement_assignment;not null" json:"recordedAt"`
}

func (MovementLog) TableName() string {
	return "patrol_movement_logs"
}
