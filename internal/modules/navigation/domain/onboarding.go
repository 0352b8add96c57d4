package domain

import "fmt"

const (
	PageCount = 3
	LastPage  = PageCount - 1
)

type Phase string

const (
	PhasePage0     Phase = "page0"
	PhasePage1     Phase = "page1"
	PhasePage2     Phase = "page2"
	PhaseCompleted Phase = "completed"
)

func PhaseForPage(i int) Phase {
	switch i {
	case 0:
		return PhasePage0
	case 1:
		return PhasePage1
	case 2:
		return PhasePage2
	default:
		panic(fmt.Sprintf("navigation: onboarding page index %d outside [0,%d]", i, LastPage))
	}
}

type Page struct {
	Title     string
	Body      string
	Action    string
	Skippable bool
}

var pages = [PageCount]Page{
	{
		Title:  "Welcome to Pulse",
		Body:   "Keep an eye on your heart rate, recovery and daily movement in one place.",
		Action: "Next",
	},
	{
		Title:  "Understand your rhythm",
		Body:   "Resting heart rate and heart-rate variability show how well you recover between efforts.",
		Action: "Next",
	},
	{
		Title:     "Connect your watch",
		Body:      "Pair a watch to stream live readings. You can do this later from the dashboard.",
		Action:    "Get started",
		Skippable: true,
	},
}

// PageAt returns the static content for an onboarding page.
func PageAt(i int) Page {
	mustValidPage(i)
	return pages[i]
}
