package dto

type PageOutput struct {
	Index     int
	Title     string
	Body      string
	Action    string
	Skippable bool
}

type StateOutput struct {
	Screen             string
	Phase              string
	Initializing       bool
	OnboardingComplete bool
	PageIndex          int
	PageCount          int
	Page               PageOutput
	// Revision increases with every committed change; a state with a lower
	// revision than one already seen is outdated.
	Revision uint64
}

type StartInput struct {
	// OnChange, when set, receives the state produced by delayed
	// transitions such as the startup completion.
	OnChange func(StateOutput)
}

type AdvanceInput struct {
	Skip bool
}
