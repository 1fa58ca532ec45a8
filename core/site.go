package core

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Site configuration is owned by the roster admin product. The patrol
// core only reads it: the geofence is snapshotted into compliance rows
// at seed time, and checkpoints are matched by scan token.

type Site struct {
	SiteID         uint   `gorm:"primaryKey;autoIncrement"`
	CompanyID      uint   `gorm:"index"`
	Name           string `gorm:"size:200"`
	Address        string
	Latitude       float64
	Longitude      float64
	GeofenceRadius float64 `gorm:"column:geofence_radius"` // metres
	Timezone       string  `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Site) TableName() string {
	return "sites"
}

// SiteCallTime is one entry of the site's daily check-call schedule.
// Soft-deleted entries stop seeding new calls but never touch rows
// already seeded from them.
type SiteCallTime struct {
	SiteCallTimeID uint   `gorm:"primaryKey;autoIncrement"`
	SiteID         uint   `gorm:"index;not null"`
	Time           string `gorm:"size:5;not null"` // "15:04" site-local
	DeletedAt      gorm.DeletedAt
	CreatedAt      time.Time
}

func (SiteCallTime) TableName() string {
	return "site_call_times"
}

// SiteCheckpoint is a physical patrol point. ScanToken is the opaque
// value embedded in the QR artifact fixed at the checkpoint.
type SiteCheckpoint struct {
	CheckpointID uint   `gorm:"primaryKey;autoIncrement"`
	SiteID       uint   `gorm:"index;not null"`
	Name         string `gorm:"size:200"`
	ScanToken    string `gorm:"size:64;uniqueIndex;not null"`
	DeletedAt    gorm.DeletedAt
	CreatedAt    time.Time
}

func (SiteCheckpoint) TableName() string {
	return "site_checkpoints"
}

type Employee struct {
	EmployeeID uint   `gorm:"primaryKey;autoIncrement"`
	Code       string `gorm:"uniqueIndex"`
	FirstName  string
	Surname    string
	Email      *string `gorm:"index"`
	Mobile     *string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func FindSiteByID(db *gorm.DB, id uint) (*Site, error) {
	var site Site
	result := db.First(&site, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &site, nil
}

func FindEmployeeByID(db *gorm.DB, id uint) (*Employee, error) {
	var emp Employee
	result := db.First(&emp, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &emp, nil
}

// ActiveCallTimes returns the live schedule entries for a site, in
// time-of-day order. gorm's soft delete keeps removed entries out.
func ActiveCallTimes(db *gorm.DB, siteID uint) ([]SiteCallTime, error) {
	var times []SiteCallTime
	err := db.Where("site_id = ?", siteID).Order("time").Find(&times).Error
	return times, err
}

// ActiveCheckpoints returns the live checkpoints configured on a site.
func ActiveCheckpoints(db *gorm.DB, siteID uint) ([]SiteCheckpoint, error) {
	var cps []SiteCheckpoint
	err := db.Where("site_id = ?", siteID).Order("checkpoint_id").Find(&cps).Error
	return cps, err
}

// FindCheckpointByToken resolves a scan token to a live checkpoint.
func FindCheckpointByToken(db *gorm.DB, token string) (*SiteCheckpoint, error) {
	var cp SiteCheckpoint
	result := db.Where("scan_token = ?", token).First(&cp)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &cp, nil
}
