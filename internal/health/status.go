package health

// Status is the qualitative label for a health score. Scores are never shown
// to people; statuses are.
type Status string

const (
	Thriving Status = "thriving"
	Healthy  Status = "healthy"
	Cooling  Status = "cooling"
	AtRisk   Status = "at_risk"
	Dormant  Status = "dormant"
)

// Statuses lists every status from best to worst.
var Statuses = []Status{Thriving, Healthy, Cooling, AtRisk, Dormant}

var statusLabels = map[Status]string{
	Thriving: "Thriving",
	Healthy:  "Healthy",
	Cooling:  "Cooling",
	AtRisk:   "Needs attention",
	Dormant:  "Dormant",
}

var statusColors = map[Status]string{
	Thriving: "#7CAA6D", // sage green
	Healthy:  "#8BB87A",
	Cooling:  "#FFE17B",
	AtRisk:   "#D4896A", // terracotta
	Dormant:  "#9BA39C",
}

// StatusOf maps a score to its status. Total over all integers.
func StatusOf(score int) Status {
	switch {
	case score >= 80:
		return Thriving
	case score >= 60:
		return Healthy
	case score >= 40:
		return Cooling
	case score >= 20:
		return AtRisk
	default:
		return Dormant
	}
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Color is the hex color used to render the status.
func (s Status) Color() string {
	return statusColors[s]
}

// NeedsAttention is true for statuses still inside the actionable window.
// Dormant friendships have gone past it.
func (s Status) NeedsAttention() bool {
	return s == Cooling || s == AtRisk
}

// Expression is the face a plant wears.
type Expression string

const (
	ExpressionHappy    Expression = "happy"
	ExpressionContent  Expression = "content"
	ExpressionSleeping Expression = "sleeping"
	ExpressionWorried  Expression = "worried"
	ExpressionExcited  Expression = "excited"
	ExpressionWinking  Expression = "winking"
)

// ExpressionFor maps a status to a plant's face.
func ExpressionFor(s Status) Expression {
	switch s {
	case Thriving:
		return ExpressionHappy
	case AtRisk:
		return ExpressionWorried
	case Dormant:
		return ExpressionSleeping
	default:
		// cooling is still okay, just drifting
		return ExpressionContent
	}
}
