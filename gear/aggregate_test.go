package gear_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gearledger/gearledger/gear"
	"github.com/gearledger/gearledger/strava"
)

func roadBike() []strava.GearSummary {
	return []strava.GearSummary{{ID: "b1", Name: "Road Bike"}}
}

func TestAggregateAttributesRides(t *testing.T) {
	equipment := gear.FromAthlete([]strava.GearSummary{
		{ID: "b1", Name: "Road Bike"},
		{ID: "b2", Name: "Gravel Bike"},
	})

	activities := []strava.Activity{
		{Type: "Ride", GearID: "b1", Distance: 10000, TotalElevationGain: 100, MovingTime: 1800},
		{Type: "Ride", GearID: "b1", Distance: 20000, TotalElevationGain: 250, MovingTime: 3600},
		{Type: "VirtualRide", GearID: "b2", Distance: 30000, TotalElevationGain: 300},
	}
	gear.Aggregate(equipment, activities)

	require.Equal(t, 30000.0, equipment["b1"].Distance)
	require.Equal(t, 2, equipment["b1"].Rides)
	require.Equal(t, 350.0, equipment["b1"].Elevation)
	require.Equal(t, int64(5400), equipment["b1"].MovingTime)
	require.Equal(t, 1, equipment["b2"].Rides)
}

func TestAggregateIsIdempotent(t *testing.T) {
	equipment := gear.FromAthlete(roadBike())
	activities := []strava.Activity{
		{Type: "Ride", GearID: "b1", Distance: 10000, TotalElevationGain: 100},
		{Type: "Ride", GearID: "b1", Distance: 5000, TotalElevationGain: 50},
	}

	gear.Aggregate(equipment, activities)
	first := *equipment["b1"]

	gear.Aggregate(equipment, activities)
	require.Equal(t, first, *equipment["b1"])
}

func TestAggregateDropsUnknownGear(t *testing.T) {
	equipment := gear.FromAthlete(roadBike())
	activities := []strava.Activity{
		{Type: "Ride", GearID: "ghost", Distance: 10000, TotalElevationGain: 100},
		{Type: "Ride", GearID: "", Distance: 5000},
	}

	gear.Aggregate(equipment, activities)

	require.Equal(t, 0.0, equipment["b1"].Distance)
	require.Equal(t, 0, equipment["b1"].Rides)
}

func TestRunsAreFilteredBeforeAggregation(t *testing.T) {
	equipment := gear.FromAthlete(roadBike())

	fetched := []strava.Activity{
		{Type: "Ride", GearID: "b1", Distance: 10000, TotalElevationGain: 100},
		{Type: "Run", GearID: "b1", Distance: 5000},
	}
	var rides []strava.Activity
	for _, a := range fetched {
		if a.IsRide() {
			rides = append(rides, a)
		}
	}
	gear.Aggregate(equipment, rides)

	require.Equal(t, 10000.0, equipment["b1"].Distance)
	require.Equal(t, 1, equipment["b1"].Rides)
	require.Equal(t, 100.0, equipment["b1"].Elevation)
}

func TestSummarizeExcludesUnriddenAndSortsByDistance(t *testing.T) {
	equipment := gear.FromAthlete([]strava.GearSummary{
		{ID: "b1", Name: "Road Bike"},
		{ID: "b2", Name: "Gravel Bike"},
		{ID: "b3", Name: "Dusty Bike"},
	})
	activities := []strava.Activity{
		{Type: "Ride", GearID: "b1", Distance: 10000},
		{Type: "Ride", GearID: "b2", Distance: 40000},
		{Type: "Ride", GearID: "b2", Distance: 2000},
	}
	gear.Aggregate(equipment, activities)

	summary, ridden := gear.Summarize(equipment)

	require.Equal(t, 2, summary.Bikes)
	require.Equal(t, 3, summary.Rides)
	require.Equal(t, 52000.0, summary.Distance)

	require.Len(t, ridden, 2)
	require.Equal(t, "Gravel Bike", ridden[0].Name)
	require.Equal(t, "Road Bike", ridden[1].Name)
}

func TestAvgDistance(t *testing.T) {
	e := gear.Equipment{Distance: 30000, Rides: 2}
	require.Equal(t, 15000.0, e.AvgDistance())

	require.Equal(t, 0.0, gear.Equipment{}.AvgDistance())
}
