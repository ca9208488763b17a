package metro

type Station struct {
	ID   string        `json:"id" yaml:"id" bson:"primaryidentifier" groups:"basic,detailed"`
	Name BilingualName `json:"name" yaml:"name" bson:"name" groups:"basic,detailed"`

	Lines     []LineMembership `json:"lines" yaml:"lines" bson:"lines" groups:"basic,detailed"`
	Relations []string         `json:"relations" yaml:"relations" bson:"relations" groups:"detailed"`

	Disabled bool `json:"disabled" yaml:"disabled" bson:"disabled" groups:"basic,detailed"`

	Amenities Amenities `json:"amenities" yaml:"amenities" bson:"amenities" groups:"detailed"`
	Location  *Location `json:"location,omitempty" yaml:"location,omitempty" bson:"location,omitempty" groups:"detailed"`
}

// LineMembership is the ordinal position of a station along one line
type LineMembership struct {
	Line     int `json:"line" yaml:"line" bson:"line" groups:"basic,detailed"`
	Position int `json:"position" yaml:"position" bson:"position" groups:"detailed"`
}

type Amenities struct {
	Wheelchair    bool `json:"wheelchair" yaml:"wheelchair" bson:"wheelchair" groups:"detailed"`
	Elevator      bool `json:"elevator" yaml:"elevator" bson:"elevator" groups:"detailed"`
	Escalator     bool `json:"escalator" yaml:"escalator" bson:"escalator" groups:"detailed"`
	Parking       bool `json:"parking" yaml:"parking" bson:"parking" groups:"detailed"`
	WaterCooler   bool `json:"water_cooler" yaml:"water_cooler" bson:"watercooler" groups:"detailed"`
	CoffeeShop    bool `json:"coffee_shop" yaml:"coffee_shop" bson:"coffeeshop" groups:"detailed"`
	PublicPhone   bool `json:"public_phone" yaml:"public_phone" bson:"publicphone" groups:"detailed"`
	LostAndFound  bool `json:"lost_and_found" yaml:"lost_and_found" bson:"lostandfound" groups:"detailed"`
	BicycleRental bool `json:"bicycle_rental" yaml:"bicycle_rental" bson:"bicyclerental" groups:"detailed"`
}

type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" bson:"latitude" groups:"detailed"`
	Longitude float64 `json:"longitude" yaml:"longitude" bson:"longitude" groups:"detailed"`
}

// Position returns the station's ordinal on a line and whether it is on that line at all
func (s *Station) Position(line int) (int, bool) {
	for _, membership := range s.Lines {
		if membership.Line == line {
			return membership.Position, true
		}
	}

	return 0, false
}

func (s *Station) LineNumbers() []int {
	numbers := make([]int, 0, len(s.Lines))
	for _, membership := range s.Lines {
		numbers = append(numbers, membership.Line)
	}

	return numbers
}
