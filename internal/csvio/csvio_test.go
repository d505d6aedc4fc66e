package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
)

const validCSV = `id,x,y,group,earliest_start,latest_start,min_duration,max_duration,des_start_time,des_duration,charge_mode,is_charging,is_service_station
0,0,0,0,0,0,1,287,0,0,none,false,false
1,100,100,1,10,50,6,30,20,10,slow,true,false
2,0,0,0,0,287,1,287,0,0,none,false,false
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadActivitiesValid(t *testing.T) {
	path := writeTemp(t, "activities.csv", validCSV)
	set, err := ReadActivities(path)
	require.NoError(t, err)
	assert.Len(t, set.Activities, 3)
	assert.Equal(t, 1, set.Activities[1].Group)
	assert.True(t, set.Activities[1].IsCharging)
}

func TestReadActivitiesMissingColumn(t *testing.T) {
	path := writeTemp(t, "activities.csv", "id,x,y\n0,0,0\n")
	_, err := ReadActivities(path)
	assert.Error(t, err)
}

func TestReadActivitiesBadRow(t *testing.T) {
	bad := `id,x,y,group,earliest_start,latest_start,min_duration,max_duration,des_start_time,des_duration,charge_mode,is_charging,is_service_station
notanumber,0,0,0,0,0,1,287,0,0,none,false,false
`
	path := writeTemp(t, "activities.csv", bad)
	_, err := ReadActivities(path)
	assert.Error(t, err)
}

func TestWriteScheduleRoundTripShape(t *testing.T) {
	sched := &engine.Schedule{
		FinalUtility: 12.5,
		FinalSoC:     0.6,
		Steps: []engine.ScheduleStep{
			{ActivityID: 0, Group: 0, StartTime: 0, Duration: 1, SoCStart: 0.8, SoCEnd: 0.8, CumulativeUtility: 0},
			{ActivityID: 1, Group: 1, StartTime: 10, Duration: 20, SoCStart: 0.8, SoCEnd: 0.9, ChargeCost: 1.23, CumulativeUtility: 12.5},
		},
	}
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, WriteSchedule(path, sched))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "activity_id,group,start_time,duration")
	assert.Contains(t, string(data), "1.230000")
}
