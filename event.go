package main

// Category identifies one of the eight kinds of synthetic events. The order
// is load-bearing: the scheduler rotates through categories by index, so the
// sequence repeats every eight ticks.
type Category int

const (
	CategoryInfo Category = iota
	CategoryWarning
	CategoryError
	CategoryDebug
	CategoryPerformance
	CategorySecurity
	CategoryBusiness
	CategorySystem

	NumCategories = 8
)

var categoryNames = [NumCategories]string{
	"info", "warning", "error", "debug",
	"performance", "security", "business", "system",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory maps a category name back to its Category. The second return
// value is false if the name isn't one of the eight.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// Severity is the level an event is reported at. A category does not fix the
// severity of its events: performance events derive theirs from the
// synthesized duration, and several security, business, and system scenarios
// promote or demote themselves.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Fault is a deliberately fabricated error payload embedded in an event. It
// is data for the downstream pipeline to render, not a failure of the
// generator; a tick that emits a Fault is still a successful tick.
type Fault struct {
	Kind    string
	Message string
}

// Event is the payload synthesized for one tick. It lives for exactly one
// tick: built by a category generator, handed to the sink, and discarded.
type Event struct {
	Category Category
	Severity Severity
	Message  string
	Fields   map[string]any
	Fault    *Fault
}
