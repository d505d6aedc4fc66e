// Package csvio handles the two flat-file boundaries a host driver needs:
// reading the activities CSV a solve runs over, and writing the resulting
// schedule CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
)

var activityHeader = []string{
	"id", "x", "y", "group",
	"earliest_start", "latest_start", "min_duration", "max_duration",
	"des_start_time", "des_duration",
	"charge_mode", "is_charging", "is_service_station",
}

// ReadActivities loads the activity set a solve runs over from path. The
// engine core never touches the filesystem itself; this is the host-side
// loader that feeds it.
func ReadActivities(path string) (domain.ActivitySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ActivitySet{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return domain.ActivitySet{}, err
	}
	if len(rows) < 2 {
		return domain.ActivitySet{}, fmt.Errorf("activities file %s has no data rows", path)
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return domain.ActivitySet{}, err
	}

	acts := make([]domain.Activity, 0, len(rows)-1)
	for i, row := range rows[1:] {
		a, err := parseActivity(row, idx)
		if err != nil {
			return domain.ActivitySet{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		acts = append(acts, a)
	}
	set := domain.ActivitySet{Activities: acts}
	if err := set.Validate(); err != nil {
		return domain.ActivitySet{}, err
	}
	return set, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, want := range activityHeader {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}
	return idx, nil
}

func parseActivity(row []string, idx map[string]int) (domain.Activity, error) {
	field := func(name string) string { return row[idx[name]] }

	atoi := func(name string) (int, error) { return strconv.Atoi(field(name)) }
	atof := func(name string) (float64, error) { return strconv.ParseFloat(field(name), 64) }
	atob := func(name string) (bool, error) { return strconv.ParseBool(field(name)) }

	var a domain.Activity
	var err error
	if a.ID, err = atoi("id"); err != nil {
		return a, fmt.Errorf("id: %w", err)
	}
	if a.X, err = atof("x"); err != nil {
		return a, fmt.Errorf("x: %w", err)
	}
	if a.Y, err = atof("y"); err != nil {
		return a, fmt.Errorf("y: %w", err)
	}
	if a.Group, err = atoi("group"); err != nil {
		return a, fmt.Errorf("group: %w", err)
	}
	if a.EarliestStart, err = atoi("earliest_start"); err != nil {
		return a, fmt.Errorf("earliest_start: %w", err)
	}
	if a.LatestStart, err = atoi("latest_start"); err != nil {
		return a, fmt.Errorf("latest_start: %w", err)
	}
	if a.MinDuration, err = atoi("min_duration"); err != nil {
		return a, fmt.Errorf("min_duration: %w", err)
	}
	if a.MaxDuration, err = atoi("max_duration"); err != nil {
		return a, fmt.Errorf("max_duration: %w", err)
	}
	if a.DesStartTime, err = atoi("des_start_time"); err != nil {
		return a, fmt.Errorf("des_start_time: %w", err)
	}
	if a.DesDuration, err = atoi("des_duration"); err != nil {
		return a, fmt.Errorf("des_duration: %w", err)
	}
	a.ChargeMode = domain.ChargeMode(field("charge_mode"))
	if a.IsCharging, err = atob("is_charging"); err != nil {
		return a, fmt.Errorf("is_charging: %w", err)
	}
	if a.IsServiceStation, err = atob("is_service_station"); err != nil {
		return a, fmt.Errorf("is_service_station: %w", err)
	}
	return a, nil
}

// WriteSchedule writes a solved schedule's steps, in chronological order,
// to path.
func WriteSchedule(path string, sched *engine.Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"activity_id", "group", "start_time", "duration",
		"soc_start", "soc_end",
		"charge_mode", "charge_duration", "charge_cost",
		"cumulative_utility",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range sched.Steps {
		row := []string{
			strconv.Itoa(s.ActivityID),
			strconv.Itoa(s.Group),
			strconv.Itoa(s.StartTime),
			strconv.Itoa(s.Duration),
			fmtFloat(s.SoCStart),
			fmtFloat(s.SoCEnd),
			string(s.ChargeMode),
			strconv.Itoa(s.ChargeDuration),
			fmtFloat(s.ChargeCost),
			fmtFloat(s.CumulativeUtility),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
