package metro

import "strings"

// BilingualName holds the English and Persian display form of a name
type BilingualName struct {
	En string `json:"en" yaml:"en" bson:"en" groups:"basic,detailed"`
	Fa string `json:"fa" yaml:"fa" bson:"fa" groups:"basic,detailed"`
}

func (n BilingualName) IsZero() bool {
	return n.En == "" && n.Fa == ""
}

// Matches compares either language, ignoring case and surrounding whitespace
func (n BilingualName) Matches(other BilingualName) bool {
	if n.En != "" && strings.EqualFold(strings.TrimSpace(n.En), strings.TrimSpace(other.En)) {
		return true
	}
	if n.Fa != "" && strings.TrimSpace(n.Fa) == strings.TrimSpace(other.Fa) {
		return true
	}

	return false
}

func (n BilingualName) String() string {
	return n.En
}
