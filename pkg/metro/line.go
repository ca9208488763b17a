package metro

// UnassignedLine tags station items emitted before any line could be chosen
const UnassignedLine = 0

type Line struct {
	Number int    `json:"number" yaml:"number" bson:"number" groups:"basic,detailed"`
	Colour string `json:"colour,omitempty" yaml:"colour,omitempty" bson:"colour,omitempty" groups:"basic,detailed"`

	Main   *Endpoints    `json:"main" yaml:"main" bson:"main" groups:"basic,detailed"`
	Branch *Endpoints    `json:"branch,omitempty" yaml:"branch,omitempty" bson:"branch,omitempty" groups:"basic,detailed"`
	Config *BranchConfig `json:"branch_config,omitempty" yaml:"branch_config,omitempty" bson:"branchconfig,omitempty" groups:"detailed"`
}

// Endpoints are the two termini of a path, First having the lowest positions
type Endpoints struct {
	First  BilingualName `json:"first" yaml:"first" bson:"first" groups:"basic,detailed"`
	Second BilingualName `json:"second" yaml:"second" bson:"second" groups:"basic,detailed"`
}

func (e *Endpoints) Toward(heading Heading) BilingualName {
	if heading == HeadingFirst {
		return e.First
	}

	return e.Second
}

type BranchConfig struct {
	BranchOff string   `json:"branch_off" yaml:"branch_off" bson:"branchoff" groups:"detailed"`
	Stations  []string `json:"stations" yaml:"stations" bson:"stations" groups:"detailed"`
}

func (b *BranchConfig) Contains(stationID string) bool {
	if b == nil {
		return false
	}

	for _, id := range b.Stations {
		if id == stationID {
			return true
		}
	}

	return false
}

// Heading is the direction of travel along a line relative to its position ordering
type Heading string

const (
	HeadingFirst  Heading = "first"
	HeadingSecond Heading = "second"
)

// HeadingBetween derives the travel heading from two positions on the same line
func HeadingBetween(fromPosition int, toPosition int) Heading {
	if toPosition > fromPosition {
		return HeadingSecond
	}

	return HeadingFirst
}
