package core

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gcore "guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/patrol/model"
	"guardlink.com.au/guardlink/utils"
)

// SeedCheckpointScans creates one upcoming row per (employee,
// checkpoint, day) across the inclusive range, snapshotting the site's
// geofence. Idempotent like check-call seeding.
func SeedCheckpointScans(db *gorm.DB, assignment *model.Assignment, site *gcore.Site, checkpoints []gcore.SiteCheckpoint, startDate, endDate time.Time) (int, error) {
	var rows []model.CheckpointScan
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		day := d
		rows = append(rows, utils.Map(checkpoints, func(cp gcore.SiteCheckpoint) model.CheckpointScan {
			return model.CheckpointScan{
				EmployeeID:   assignment.EmployeeID,
				CheckpointID: cp.CheckpointID,
				Date:         day,
				Status:       model.CallStatusUpcoming,
				Latitude:     site.Latitude,
				Longitude:    site.Longitude,
				RadiusM:      site.GeofenceRadius,
			}
		})...)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "checkpoint_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// ValidateScanPreconditions enforces the book-on bracket and the
// token/site pairing. Checkpoint scans have no per-slot time window:
// any checkpoint may be scanned at any point while booked on.
func ValidateScanPreconditions(assignment *model.Assignment, checkpoint *gcore.SiteCheckpoint) error {
	if assignment.BookOnAt == nil {
		return ErrNotBookedOn
	}
	if assignment.BookOffAt != nil {
		return ErrAlreadyBookedOff
	}
	if checkpoint == nil {
		return ErrUnknownToken
	}
	if checkpoint.SiteID != assignment.SiteID {
		return ErrCheckpointWrongSite
	}
	return nil
}

// ScanCheckpoint records a patrol scan for the assignment's employee on
// the scan day. The per-day uniqueness means a second scan of the same
// checkpoint updates the existing row: last scan wins, no duplicates.
// The geofence snapshot is retained for compliance analysis but not
// enforced against the supplied coordinates.
func ScanCheckpoint(db *gorm.DB, assignment *model.Assignment, token string, lat, lng float64, now time.Time, loc *time.Location) (*model.CheckpointScan, error) {
	checkpoint, err := gcore.FindCheckpointByToken(db, token)
	if err != nil {
		return nil, err
	}
	if err := ValidateScanPreconditions(assignment, checkpoint); err != nil {
		return nil, err
	}

	day := now.In(loc)
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	row := model.CheckpointScan{
		EmployeeID:      assignment.EmployeeID,
		CheckpointID:    checkpoint.CheckpointID,
		Date:            date,
		Status:          model.CallStatusCompleted,
		ActualTime:      &now,
		ActualLatitude:  &lat,
		ActualLongitude: &lng,
	}

	// Upsert against the per-day slot: seeded rows are completed in
	// place, unseeded scans still land as a completed row.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "checkpoint_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "actual_time", "actual_latitude", "actual_longitude",
		}),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	var saved model.CheckpointScan
	if err := db.Where("employee_id = ? AND checkpoint_id = ? AND date = ?",
		assignment.EmployeeID, checkpoint.CheckpointID, date).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// CheckpointRound is one expected checkpoint visit with its checkpoint
// details joined in for the patrol list.
type CheckpointRound struct {
	model.CheckpointScan
	CheckpointName string `json:"checkpointName"`
	ScanToken      string `json:"scanToken"`
}

// ListCheckpointRounds returns the employee's expected visits for one
// calendar day, joined with the checkpoint register.
func ListCheckpointRounds(db *gorm.DB, employeeID uint, date time.Time) ([]CheckpointRound, error) {
	var rounds []CheckpointRound
	err := db.Model(&model.CheckpointScan{}).
		Select(`patrol_checkpoint_scans.*,
                site_checkpoints.name AS checkpoint_name,
                site_checkpoints.scan_token AS scan_token`).
		Joins("JOIN site_checkpoints ON site_checkpoints.checkpoint_id = patrol_checkpoint_scans.checkpoint_id").
		Where("patrol_checkpoint_scans.employee_id = ? AND patrol_checkpoint_scans.date = ?", employeeID, date).
		Order("site_checkpoints.checkpoint_id").
		Scan(&rounds).Error
	return rounds, err
}
