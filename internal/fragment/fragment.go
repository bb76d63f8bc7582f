// Package fragment turns the markup returned by a suggestion endpoint into
// an ordered, identified set of selectable options.
package fragment

// Option is one selectable suggestion parsed from a fetch response. It is
// immutable once parsed; a replaced ResultSet discards its options.
type Option struct {
	// ID is the option's stable identity within the page. Generated at parse
	// time when the source element carries none.
	ID string `json:"id" yaml:"id"`

	// Label is the display text: the explicit label attribute when present,
	// else the element's trimmed text content.
	Label string `json:"label" yaml:"label"`

	// Value is the commit value: the explicit value attribute when present,
	// else the label.
	Value string `json:"value" yaml:"value"`

	// Disabled options render but never commit.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Href is non-empty for navigational options; committing one navigates
	// instead of writing a value.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Navigational reports whether committing this option should navigate
// instead of writing a value.
func (o Option) Navigational() bool {
	return o.Href != ""
}

// ResultSet is the ordered collection of options from one fetch response,
// in document order.
type ResultSet struct {
	options []Option
}

// NewResultSet builds a set from already-parsed options.
func NewResultSet(options []Option) *ResultSet {
	return &ResultSet{options: options}
}

// Len returns the number of options.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.options)
}

// Empty reports whether the set holds no options.
func (rs *ResultSet) Empty() bool {
	return rs.Len() == 0
}

// At returns the option at index i. It panics on out-of-range indices, like
// a slice access.
func (rs *ResultSet) At(i int) Option {
	return rs.options[i]
}

// Options returns a copy of the ordered options.
func (rs *ResultSet) Options() []Option {
	if rs == nil {
		return nil
	}
	out := make([]Option, len(rs.options))
	copy(out, rs.options)
	return out
}

// IndexOf returns the position of the option with the given id, or -1.
func (rs *ResultSet) IndexOf(id string) int {
	if rs == nil {
		return -1
	}
	for i, o := range rs.options {
		if o.ID == id {
			return i
		}
	}
	return -1
}
