// Package domain holds the fixed recommendation table. Nothing here is
// computed beyond picking a row.
package domain

import "lifebalance/internal/platform/area"

type Category string

const (
	LowSatisfaction Category = "low_satisfaction"
	HighRisk        Category = "high_risk"
	Steady          Category = "steady"
)

const (
	LowSatisfactionBelow = 5.0
	HighRiskAbove        = 7.0
)

// Categorize picks the row for a rating. Low satisfaction wins over high risk.
func Categorize(satisfaction, risk float64) Category {
	switch {
	case satisfaction < LowSatisfactionBelow:
		return LowSatisfaction
	case risk > HighRiskAbove:
		return HighRisk
	default:
		return Steady
	}
}

// Rating is the slice of a balance metric the table needs.
type Rating struct {
	Area         area.Area
	Satisfaction float64
	Risk         float64
}

type Advice struct {
	Rating      Rating
	Category    Category
	Suggestions []string
}

func Advise(r Rating) Advice {
	category := Categorize(r.Satisfaction, r.Risk)
	return Advice{Rating: r, Category: category, Suggestions: Recommend(r.Area, category)}
}

// Recommend returns a copy of the table row, or nil for an unknown pair.
func Recommend(a area.Area, c Category) []string {
	row, ok := table[a][c]
	if !ok {
		return nil
	}
	return append([]string(nil), row...)
}

var table = map[area.Area]map[Category][]string{
	area.Career: {
		LowSatisfaction: {
			"Write down what part of the work drains you most and raise it with your manager",
			"Block one hour a week for a skill that points toward work you want",
		},
		HighRisk: {
			"Keep an up-to-date CV and a list of five people to call if the role ends",
			"Build three months of expenses in savings before taking on more exposure",
		},
		Steady: {"Schedule a quarterly check-in on where the role is heading"},
	},
	area.Health: {
		LowSatisfaction: {
			"Pick one habit (sleep, movement or food) and track it daily for two weeks",
			"Book the check-up you have been postponing",
		},
		HighRisk: {
			"Talk to a doctor about the risk you are most worried about",
			"Remove one daily source of strain before adding new goals",
		},
		Steady: {"Keep the routine that works and review it each season"},
	},
	area.Family: {
		LowSatisfaction: {
			"Set a recurring, phone-free time with the people closest to you",
			"Name one unresolved conversation and plan when to have it",
		},
		HighRisk: {
			"Agree on how decisions get made before the next stressful one",
			"Ask for outside support early; a counsellor or a trusted relative",
		},
		Steady: {"Plan something to look forward to together"},
	},
	area.PersonalGrowth: {
		LowSatisfaction: {
			"Choose one subject and give it twenty minutes a day for a month",
			"Write down what you want to be better at a year from now",
		},
		HighRisk: {
			"Cut the number of parallel projects down to one or two",
			"Protect rest; growth stalls when you are exhausted",
		},
		Steady: {"Teach someone what you learned recently"},
	},
	area.Social: {
		LowSatisfaction: {
			"Reach out to one person you miss this week",
			"Join a group that meets regularly around something you enjoy",
		},
		HighRisk: {
			"Notice which relationships cost more than they give and set limits",
			"Lean on the two or three people you trust most",
		},
		Steady: {"Keep a standing date with friends on the calendar"},
	},
	area.Finances: {
		LowSatisfaction: {
			"Track every expense for one month before changing anything",
			"Automate a small transfer to savings on payday",
		},
		HighRisk: {
			"List all debts by interest rate and pay the most expensive first",
			"Build an emergency fund covering at least three months",
		},
		Steady: {"Review subscriptions and insurance once a year"},
	},
	area.Hobbies: {
		LowSatisfaction: {
			"Put one hobby session in the calendar like a meeting",
			"Try something new for a month with no goal attached",
		},
		HighRisk: {
			"Check that the hobby is not eating the time or money it should restore",
			"Scale back to the version of it you actually enjoy",
		},
		Steady: {"Share what you make or do with someone else"},
	},
	area.Spirituality: {
		LowSatisfaction: {
			"Set aside ten quiet minutes a day for reflection or practice",
			"Write down what gives your days meaning and look for more of it",
		},
		HighRisk: {
			"Find a community or mentor to talk through doubts with",
			"Keep one small daily practice even when things are hectic",
		},
		Steady: {"Revisit the values you wrote down and check they still fit"},
	},
}
