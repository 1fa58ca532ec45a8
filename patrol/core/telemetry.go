package core

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"guardlink.com.au/guardlink/patrol/model"
)

// TrailMaxRows caps a single trail page.
const TrailMaxRows = 500

// ValidateCoordinates rejects anything outside WGS84 ranges.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

// MovementPing is the accepted ingest payload; everything beyond the
// coordinates is optional device context stored as-is.
type MovementPing struct {
	Latitude     float64
	Longitude    float64
	Accuracy     *float64
	Speed        *float64
	Heading      *float64
	Altitude     *float64
	Provider     *string
	Battery      *int
	MockLocation bool
}

// RecordMovement appends one telemetry row for an open assignment. No
// aggregation or deduplication happens at ingest; RecordedAt is
// server-assigned.
func RecordMovement(db *gorm.DB, assignment *model.Assignment, ping MovementPing, now time.Time) (*model.MovementLog, error) {
	if err := ValidateCoordinates(ping.Latitude, ping.Longitude); err != nil {
		return nil, err
	}
	if !assignment.Open() {
		return nil, ErrAssignmentClosed
	}

	row := model.MovementLog{
		AssignmentID: assignment.ID,
		Latitude:     ping.Latitude,
		Longitude:    ping.Longitude,
		Accuracy:     ping.Accuracy,
		Speed:        ping.Speed,
		Heading:      ping.Heading,
		Altitude:     ping.Altitude,
		Provider:     ping.Provider,
		Battery:      ping.Battery,
		MockLocation: ping.MockLocation,
		RecordedAt:   now,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// LatestMovement returns the single most recent ping, or nil.
func LatestMovement(db *gorm.DB, assignmentID uint) (*model.MovementLog, error) {
	var rows []model.MovementLog
	err := db.Where("assignment_id = ?", assignmentID).
		Order("recorded_at DESC, id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// MovementTrail returns pings newest first, optionally since a
// timestamp, capped at TrailMaxRows.
func MovementTrail(db *gorm.DB, assignmentID uint, since *time.Time, limit int) ([]model.MovementLog, error) {
	if limit <= 0 || limit > TrailMaxRows {
		limit = TrailMaxRows
	}

	query := db.Where("assignment_id = ?", assignmentID)
	if since != nil {
		query = query.Where("recorded_at > ?", *since)
	}

	var rows []model.MovementLog
	err := query.Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
