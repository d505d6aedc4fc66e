// Command evdp-gen produces a synthetic activities CSV for exercising the
// solver without a hand-authored fixture.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/evrand"
)

func main() {
	var (
		outputPath = flag.String("output", "activities.csv", "Output activities CSV path")
		seed       = flag.Uint64("seed", 1, "Random seed for synthetic generation")
		n          = flag.Int("n", 6, "Number of non-home candidate activities to generate")
		horizon    = flag.Int("horizon", 288, "Horizon in intervals (must match the solver config)")
	)
	flag.Parse()

	src := evrand.NewSource(*seed)
	acts := generate(src, *n, *horizon)

	if err := writeActivities(*outputPath, acts); err != nil {
		log.Fatalf("write activities: %v", err)
	}
	fmt.Printf("Wrote %d activities to %s\n", len(acts), *outputPath)
}

func generate(src *evrand.Source, n, horizon int) []domain.Activity {
	home := domain.Activity{
		ID: 0, X: 0, Y: 0, Group: 0,
		EarliestStart: 0, LatestStart: 0,
		MinDuration: 1, MaxDuration: horizon - 2,
	}
	acts := []domain.Activity{home}

	groups := []int{1, 2, 3, 4, 5, 6, 7, 8}
	modes := []domain.ChargeMode{domain.ChargeNone, domain.ChargeSlow, domain.ChargeFast, domain.ChargeRapid}

	for i := 0; i < n; i++ {
		group := groups[i%len(groups)]
		earliest := int(src.ClampedSoC(0.3, 0.15) * float64(horizon))
		latest := earliest + 20 + i*5
		if latest >= horizon-2 {
			latest = horizon - 3
		}
		minDur := 6 + i*2
		maxDur := minDur + 30

		mode := modes[i%len(modes)]
		isCharging := mode != domain.ChargeNone

		acts = append(acts, domain.Activity{
			ID:               i + 1,
			X:                src.Normal(5000, 3000),
			Y:                src.Normal(5000, 3000),
			Group:            group,
			EarliestStart:    earliest,
			LatestStart:      latest,
			MinDuration:      minDur,
			MaxDuration:      maxDur,
			DesStartTime:     (earliest + latest) / 2,
			DesDuration:      minDur + 5,
			ChargeMode:       mode,
			IsCharging:       isCharging,
			IsServiceStation: false,
		})
	}

	dusk := domain.Activity{
		ID: len(acts), X: 0, Y: 0, Group: 0,
		EarliestStart: 0, LatestStart: horizon - 1,
		MinDuration: 1, MaxDuration: horizon,
	}
	acts = append(acts, dusk)
	return acts
}

func writeActivities(path string, acts []domain.Activity) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"id", "x", "y", "group",
		"earliest_start", "latest_start", "min_duration", "max_duration",
		"des_start_time", "des_duration",
		"charge_mode", "is_charging", "is_service_station",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, a := range acts {
		row := []string{
			strconv.Itoa(a.ID),
			strconv.FormatFloat(a.X, 'f', 3, 64),
			strconv.FormatFloat(a.Y, 'f', 3, 64),
			strconv.Itoa(a.Group),
			strconv.Itoa(a.EarliestStart),
			strconv.Itoa(a.LatestStart),
			strconv.Itoa(a.MinDuration),
			strconv.Itoa(a.MaxDuration),
			strconv.Itoa(a.DesStartTime),
			strconv.Itoa(a.DesDuration),
			string(a.ChargeMode),
			strconv.FormatBool(a.IsCharging),
			strconv.FormatBool(a.IsServiceStation),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
