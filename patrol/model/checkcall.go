package model

import "time"

const (
	CallStatusUpcoming  = "upcoming"
	CallStatusCompleted = "completed"
	CallStatusMissed    = "missed"
)

// CheckCall is one scheduled phone-in slot for an assignment. The
// geofence columns are a snapshot of the site at seed time; later site
// edits never touch already-seeded rows.
type CheckCall struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	AssignmentID uint      `gorm:"column:assignment_id;uniqueIndex:idx_call_slot;not null" json:"assignmentId"`
	Date         time.Time `gorm:"column:date;type:date;uniqueIndex:idx_call_slot;not null" json:"date"`
	Time         string    `gorm:"column:time;size:5;uniqueIndex:idx_call_slot;not null" json:"time"` // "15:04" site-local
	Status       string    `gorm:"column:status;size:20;not null;default:'upcoming'" json:"status"`

	// Geofence snapshot
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
	RadiusM   float64 `gorm:"column:radius_m" json:"radiusM"`

	ActualTime      *time.Time `gorm:"column:actual_time" json:"actualTime"`
	ActualLatitude  *float64   `gorm:"column:actual_latitude" json:"actualLatitude"`
	ActualLongitude *float64   `gorm:"column:actual_longitude" json:"actualLongitude"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (CheckCall) TableName() string {
	return "patrol_check_calls"
}
