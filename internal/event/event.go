// Package event defines the widget's outward notification contract: fetch
// lifecycle, list toggling, and committed-value changes, delivered through an
// explicit observer instead of an ambient event hierarchy.
package event

// Kind identifies a notification type.
type Kind string

const (
	KindLoadStart Kind = "loadstart"
	KindLoad      Kind = "load"
	KindError     Kind = "error"
	KindLoadEnd   Kind = "loadend"
	KindToggle    Kind = "toggle"
	KindChange    Kind = "autocomplete.change"
)

// Event is a single widget notification.
type Event interface {
	Kind() Kind
}

// LoadStartEvent fires when a suggestion fetch is initiated.
type LoadStartEvent struct {
	Query string
}

func (LoadStartEvent) Kind() Kind { return KindLoadStart }

// LoadEvent fires when a suggestion fetch completed successfully.
type LoadEvent struct {
	Query string
}

func (LoadEvent) Kind() Kind { return KindLoad }

// ErrorEvent fires when a suggestion fetch failed. Presentation of the
// failure is left to the subscriber.
type ErrorEvent struct {
	Query string
	Err   error
}

func (ErrorEvent) Kind() Kind { return KindError }

// LoadEndEvent fires after every fetch attempt, successful or not.
type LoadEndEvent struct {
	Query string
}

func (LoadEndEvent) Kind() Kind { return KindLoadEnd }

// ToggleAction says which way the result list moved.
type ToggleAction string

const (
	ToggleOpen  ToggleAction = "open"
	ToggleClose ToggleAction = "close"
)

// ToggleEvent fires on every Open/Closed transition. Input and List carry the
// identities of the input surface and the result list.
type ToggleEvent struct {
	Action ToggleAction
	Input  string
	List   string
}

func (ToggleEvent) Kind() Kind { return KindToggle }

// ChangeEvent fires exactly once per committed value.
type ChangeEvent struct {
	Value     string
	TextValue string
	OptionID  string
}

func (ChangeEvent) Kind() Kind { return KindChange }
