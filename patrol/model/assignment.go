package model

import "time"

const (
	AssignmentStatusActive    = "active"
	AssignmentStatusRemoved   = "removed"
	AssignmentStatusCompleted = "completed"
)

const (
	ShiftStatusConfirmed   = "confirmed"
	ShiftStatusUnconfirmed = "unconfirmed"
)

// Assignment binds one employee to one scheduled shift instance at a
// site. Rows are created by the roster product and only mutated through
// the lifecycle actions; they are closed via Status, never deleted.
type Assignment struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	CompanyID  uint      `gorm:"column:company_id;index" json:"companyId"`
	EmployeeID uint      `gorm:"column:employee_id;index;not null" json:"employeeId"`
	SiteID     uint      `gorm:"column:site_id;index;not null" json:"siteId"`
	Date       time.Time `gorm:"column:date;type:date;not null" json:"date"`
	StartTime  string    `gorm:"column:start_time;size:5;not null" json:"startTime"` // "15:04" site-local
	EndTime    string    `gorm:"column:end_time;size:5;not null" json:"endTime"`
	Status     string    `gorm:"column:status;size:20;not null;default:'active'" json:"status"`
	// ShiftStatus flips to confirmed on the shift_created acknowledgement.
	ShiftStatus string `gorm:"column:shift_status;size:20;not null;default:'unconfirmed'" json:"shiftStatus"`

	EtaMinutes      *int       `gorm:"column:eta_minutes" json:"etaMinutes"`
	BookOnAt        *time.Time `gorm:"column:book_on_at" json:"bookOnAt"`
	BookOnEvidence  *string    `gorm:"column:book_on_evidence;size:255" json:"bookOnEvidence"`
	BookOffAt       *time.Time `gorm:"column:book_off_at" json:"bookOffAt"`
	BookOffEvidence *string    `gorm:"column:book_off_evidence;size:255" json:"bookOffEvidence"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Assignment) TableName() string {
	return "patrol_assignments"
}

// Open reports whether lifecycle actions and telemetry are still
// accepted for this assignment.
func (a *Assignment) Open() bool {
	return a.Status == AssignmentStatusActive
}
