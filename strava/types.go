package strava

// Athlete is the vendor's athlete profile, reduced to the fields this
// application reads. The bikes sub-list is the equipment inventory.
type Athlete struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"firstname"`
	LastName  string        `json:"lastname"`
	City      string        `json:"city"`
	Profile   string        `json:"profile"`
	Bikes     []GearSummary `json:"bikes"`
}

// GearSummary is one entry of the athlete's equipment list.
type GearSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is one entry of the activity listing. Distances and elevation are
// meters; moving time is seconds.
type Activity struct {
	ID                 int64   `json:"id"`
	Type               string  `json:"type"`
	SportType          string  `json:"sport_type"`
	GearID             string  `json:"gear_id"`
	Distance           float64 `json:"distance"`
	TotalElevationGain float64 `json:"total_elevation_gain"`
	MovingTime         int64   `json:"moving_time"`
}

const (
	typeRide        = "Ride"
	typeVirtualRide = "VirtualRide"
)

// IsRide reports whether the activity is a standard or virtual ride. Both the
// legacy type field and the newer sport_type field are checked; the vendor has
// been migrating between them and either may carry the value.
func (a Activity) IsRide() bool {
	switch a.Type {
	case typeRide, typeVirtualRide:
		return true
	}
	switch a.SportType {
	case typeRide, typeVirtualRide:
		return true
	}
	return false
}
