package model

import "time"

// CheckpointScan is one expected visit to one checkpoint on one
// calendar day for one employee. The (employee, checkpoint, date)
// uniqueness means re-scanning updates the same row: last scan wins.
type CheckpointScan struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	EmployeeID   uint      `gorm:"column:employee_id;uniqueIndex:idx_scan_slot;not null" json:"employeeId"`
	CheckpointID uint      `gorm:"column:checkpoint_id;uniqueIndex:idx_scan_slot;not null" json:"checkpointId"`
	Date         time.Time `gorm:"column:date;type:date;uniqueIndex:idx_scan_slot;not null" json:"date"`
	Status       string    `gorm:"column:status;size:20;not null;default:'upcoming'" json:"status"`

	// Geofence snapshot. Kept for compliance analysis; not enforced as
	// a radius gate at scan time.
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
	RadiusM   float64 `gorm:"column:radius_m" json:"radiusM"`

	ActualTime      *time.Time `gorm:"column:actual_time" json:"actualTime"`
	ActualLatitude  *float64   `gorm:"column:actual_latitude" json:"actualLatitude"`
	ActualLongitude *float64   `gorm:"column:actual_longitude" json:"actualLongitude"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (CheckpointScan) TableName() string {
	return "patrol_checkpoint_scans"
}
