package core

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gcore "guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/patrol/model"
	"guardlink.com.au/guardlink/utils"
)

// CallWindowSlack is the tolerance either side of the scheduled time
// within which a check call counts as on time. The lazy read-time sweep
// and the batch sweep job both derive "missed" from this same value.
const CallWindowSlack = 5 * time.Minute

// Derived statuses surfaced to the app on top of the stored status.
const (
	CallUIStatusUpcoming  = "upcoming"
	CallUIStatusDue       = "due"
	CallUIStatusCompleted = "completed"
	CallUIStatusMissed    = "missed"
)

// CallWindow computes the permitted completion window of a call.
func CallWindow(call *model.CheckCall, loc *time.Location) (start, end time.Time, err error) {
	scheduled, err := CombineDateTime(call.Date, call.Time, loc)
	if err != nil {
		return time.Time{}, time.Time{}, &MalformedScheduleError{Field: "check_call_time", Value: call.Time, Err: err}
	}
	return scheduled.Add(-CallWindowSlack), scheduled.Add(CallWindowSlack), nil
}

// CallView is one check call with its derived state.
type CallView struct {
	model.CheckCall
	UIStatus    string    `json:"uiStatus"`
	CanPress    bool      `json:"canPress"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
}

// DeriveCallView computes the ui status and pressability of one call at
// now. A row still nominally upcoming whose window has elapsed reads as
// missed even before the sweep persists it; both use the same window.
func DeriveCallView(call model.CheckCall, now time.Time, loc *time.Location) (CallView, error) {
	start, end, err := CallWindow(&call, loc)
	if err != nil {
		return CallView{}, err
	}

	view := CallView{CheckCall: call, WindowStart: start, WindowEnd: end}
	switch {
	case call.Status == model.CallStatusCompleted || call.ActualTime != nil:
		view.UIStatus = CallUIStatusCompleted
	case call.Status == model.CallStatusMissed:
		view.UIStatus = CallUIStatusMissed
	case now.After(end):
		view.UIStatus = CallUIStatusMissed
	case !now.Before(start):
		view.UIStatus = CallUIStatusDue
		view.CanPress = true
	default:
		view.UIStatus = CallUIStatusUpcoming
	}
	return view, nil
}

// SeedCheckCalls creates one upcoming call per day in the inclusive
// range per live schedule entry of the site, snapshotting the site's
// geofence. The upsert ignores slots that already exist, so re-seeding
// (retried provisioning calls included) is a no-op.
func SeedCheckCalls(db *gorm.DB, assignment *model.Assignment, site *gcore.Site, callTimes []gcore.SiteCallTime, startDate, endDate time.Time) (int, error) {
	var rows []model.CheckCall
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		day := d
		rows = append(rows, utils.Map(callTimes, func(ct gcore.SiteCallTime) model.CheckCall {
			return model.CheckCall{
				AssignmentID: assignment.ID,
				Date:         day,
				Time:         ct.Time,
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
		Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "date"}, {Name: "time"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// SweepMissedCalls persists "missed" for every still-upcoming call of
// the assignment whose window has fully elapsed. Runs on every list
// read so missed detection needs no timer process; the conditional
// update keeps it safe against a concurrent completion.
func SweepMissedCalls(db *gorm.DB, assignmentID uint, now time.Time, loc *time.Location) (int64, error) {
	var upcoming []model.CheckCall
	if err := db.Where("assignment_id = ? AND status = ?", assignmentID, model.CallStatusUpcoming).
		Find(&upcoming).Error; err != nil {
		return 0, err
	}

	var elapsed []uint
	for _, call := range upcoming {
		_, end, err := CallWindow(&call, loc)
		if err != nil {
			return 0, err
		}
		if now.After(end) {
			elapsed = append(elapsed, call.ID)
		}
	}
	if len(elapsed) == 0 {
		return 0, nil
	}

	result := db.Model(&model.CheckCall{}).
		Where("id IN ? AND status = ?", elapsed, model.CallStatusUpcoming).
		Update("status", model.CallStatusMissed)
	return result.RowsAffected, result.Error
}

// SweepSchemaMissedCalls runs the missed sweep over every assignment in
// the schema at once. The batch job uses it; the window arithmetic is
// the same CallWindow the read path uses, so the two cannot disagree.
func SweepSchemaMissedCalls(db *gorm.DB, now time.Time, loc *time.Location) (int64, error) {
	var upcoming []model.CheckCall
	if err := db.Where("status = ? AND date <= ?",
		model.CallStatusUpcoming, now.In(loc).Format("2006-01-02")).
		Find(&upcoming).Error; err != nil {
		return 0, err
	}

	var elapsed []uint
	for _, call := range upcoming {
		_, end, err := CallWindow(&call, loc)
		if err != nil {
			return 0, err
		}
		if now.After(end) {
			elapsed = append(elapsed, call.ID)
		}
	}
	if len(elapsed) == 0 {
		return 0, nil
	}

	result := db.Model(&model.CheckCall{}).
		Where("id IN ? AND status = ?", elapsed, model.CallStatusUpcoming).
		Update("status", model.CallStatusMissed)
	return result.RowsAffected, result.Error
}

// ListCheckCalls sweeps, then returns the assignment's calls in
// schedule order with derived state.
func ListCheckCalls(db *gorm.DB, assignmentID uint, now time.Time, loc *time.Location) ([]CallView, error) {
	if _, err := SweepMissedCalls(db, assignmentID, now, loc); err != nil {
		return nil, err
	}

	var calls []model.CheckCall
	if err := db.Where("assignment_id = ?", assignmentID).
		Order("date, time").
		Find(&calls).Error; err != nil {
		return nil, err
	}

	views := make([]CallView, 0, len(calls))
	for _, call := range calls {
		view, err := DeriveCallView(call, now, loc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CompleteCheckCall marks one call completed. The update conditions on
// the row still being upcoming, so of two concurrent attempts exactly
// one wins and the loser is told the call is already completed. An
// attempt after the window additionally flips the row to missed rather
// than leaving it stale.
func CompleteCheckCall(db *gorm.DB, callID uint, lat, lng float64, now time.Time, loc *time.Location) (*model.CheckCall, error) {
	var call model.CheckCall
	result := db.First(&call, callID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrCheckCallNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	switch call.Status {
	case model.CallStatusCompleted:
		return nil, ErrCallAlreadyCompleted
	case model.CallStatusMissed:
		return nil, ErrCallAlreadyMissed
	}

	start, end, err := CallWindow(&call, loc)
	if err != nil {
		return nil, err
	}

	if now.Before(start) {
		return nil, &WindowViolationError{WindowStart: start, WindowEnd: end, At: now}
	}
	if now.After(end) {
		// Too late: settle the row as missed instead of leaving it
		// upcoming until the next sweep.
		db.Model(&model.CheckCall{}).
			Where("id = ? AND status = ?", call.ID, model.CallStatusUpcoming).
			Update("status", model.CallStatusMissed)
		return nil, &WindowViolationError{WindowStart: start, WindowEnd: end, At: now}
	}

	update := db.Model(&model.CheckCall{}).
		Where("id = ? AND status = ?", call.ID, model.CallStatusUpcoming).
		Updates(map[string]interface{}{
			"status":           model.CallStatusCompleted,
			"actual_time":      now,
			"actual_latitude":  lat,
			"actual_longitude": lng,
		})
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		// Lost the race to a concurrent completion.
		return nil, ErrCallAlreadyCompleted
	}

	if err := db.First(&call, call.ID).Error; err != nil {
		return nil, err
	}
	return &call, nil
}
