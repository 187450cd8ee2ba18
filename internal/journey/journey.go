// Package journey lays out the streak as a path of days with milestones.
package journey

type Status string

const (
	StatusCompleted Status = "completed"
	StatusCurrent   Status = "current"
	StatusLocked    Status = "locked"

	minimumDays   = 14
	lookaheadDays = 7
)

type Node struct {
	Day       int
	Status    Status
	Milestone *Milestone
}

type Milestone struct {
	Day   int
	Emoji string
	Label string
}

var milestones = []Milestone{
	{Day: 7, Emoji: "🏆", Label: "1 Week!"},
	{Day: 14, Emoji: "⭐", Label: "2 Weeks!"},
	{Day: 30, Emoji: "🎯", Label: "1 Month!"},
	{Day: 60, Emoji: "🔥", Label: "2 Months!"},
	{Day: 100, Emoji: "💎", Label: "100 Days!"},
}

// Nodes returns days 1..max(streak+7, 14). Days before the streak are completed, the
// streak's own day is current (day 1 when there is no streak), and the rest are locked.
func Nodes(streak int) []Node {
	streak = max(streak, 0)
	total := max(streak+lookaheadDays, minimumDays)
	current := max(streak, 1)

	nodes := make([]Node, 0, total)
	for day := 1; day <= total; day++ {
		status := StatusLocked
		switch {
		case day < current:
			status = StatusCompleted
		case day == current:
			status = StatusCurrent
		}
		node := Node{Day: day, Status: status}
		if milestone, ok := MilestoneAt(day); ok {
			node.Milestone = &milestone
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func MilestoneAt(day int) (Milestone, bool) {
	for _, milestone := range milestones {
		if milestone.Day == day {
			return milestone, true
		}
	}
	return Milestone{}, false
}

// NextMilestone returns the first milestone after streak, if any is left.
func NextMilestone(streak int) (Milestone, bool) {
	for _, milestone := range milestones {
		if milestone.Day > streak {
			return milestone, true
		}
	}
	return Milestone{}, false
}

// Weeks is the number of full weeks in the streak.
func Weeks(streak int) int {
	return max(streak, 0) / 7
}

// MotivationKey names the UI string that encourages a learner with the given streak.
func MotivationKey(streak int) string {
	switch {
	case streak <= 0:
		return "journey_motivation_start"
	case streak < 7:
		return "journey_motivation_first_week"
	case streak < 30:
		return "journey_motivation_on_fire"
	default:
		return "journey_motivation_champion"
	}
}
