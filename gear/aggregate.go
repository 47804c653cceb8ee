package gear

import (
	"sort"

	"github.com/gearledger/gearledger/strava"
)

// Equipment is one bike with its aggregation accumulators. Accumulators are
// zeroed and recomputed on every pass, never updated incrementally.
type Equipment struct {
	ID         string
	Name       string
	Distance   float64 // meters
	Rides      int
	Elevation  float64 // meters
	MovingTime int64   // seconds
}

// AvgDistance returns the mean distance per ride in meters, zero when the
// equipment has no rides.
func (e Equipment) AvgDistance() float64 {
	if e.Rides == 0 {
		return 0
	}
	return e.Distance / float64(e.Rides)
}

// FromAthlete builds the equipment map from the athlete's bike list.
func FromAthlete(bikes []strava.GearSummary) map[string]*Equipment {
	equipment := make(map[string]*Equipment, len(bikes))
	for _, bike := range bikes {
		equipment[bike.ID] = &Equipment{ID: bike.ID, Name: bike.Name}
	}
	return equipment
}

// Aggregate folds activities into per-equipment totals. All accumulators are
// reset first, so the pass is idempotent for a given activity list. Activities
// without a gear id, or referencing unknown equipment, are dropped silently.
func Aggregate(equipment map[string]*Equipment, activities []strava.Activity) {
	for _, e := range equipment {
		e.Distance = 0
		e.Rides = 0
		e.Elevation = 0
		e.MovingTime = 0
	}

	for _, activity := range activities {
		if activity.GearID == "" {
			continue
		}
		e, ok := equipment[activity.GearID]
		if !ok {
			continue
		}
		e.Distance += activity.Distance
		e.Rides++
		e.Elevation += activity.TotalElevationGain
		e.MovingTime += activity.MovingTime
	}
}

// Summary holds the overall totals across equipment with at least one ride.
type Summary struct {
	Distance float64
	Rides    int
	Bikes    int
}

// Summarize derives the overall totals and the display list: equipment with
// zero rides is excluded, the rest sorted descending by distance. The map has
// no ordering of its own; the sort here is the only ordering guarantee.
func Summarize(equipment map[string]*Equipment) (Summary, []*Equipment) {
	var summary Summary
	ridden := make([]*Equipment, 0, len(equipment))
	for _, e := range equipment {
		if e.Rides == 0 {
			continue
		}
		summary.Distance += e.Distance
		summary.Rides += e.Rides
		summary.Bikes++
		ridden = append(ridden, e)
	}

	sort.Slice(ridden, func(i, j int) bool {
		if ridden[i].Distance != ridden[j].Distance {
			return ridden[i].Distance > ridden[j].Distance
		}
		return ridden[i].ID < ridden[j].ID
	})
	return summary, ridden
}
