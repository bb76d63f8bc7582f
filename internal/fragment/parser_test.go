package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOptions(t *testing.T, markup string) []Option {
	t.Helper()
	rs, err := NewParser("results").Parse(markup)
	require.NoError(t, err)
	return rs.Options()
}

func TestParseCollectsOptionsInDocumentOrder(t *testing.T) {
	opts := parseOptions(t, `
		<ul>
			<li role="option" id="opt-a">Apple</li>
			<li role="option" id="opt-b">Banana</li>
			<li>plain item</li>
			<li role="option" id="opt-c">Cherry</li>
		</ul>`)

	require.Len(t, opts, 3)
	assert.Equal(t, []string{"Apple", "Banana", "Cherry"},
		[]string{opts[0].Label, opts[1].Label, opts[2].Label})
	assert.Equal(t, "opt-a", opts[0].ID)
}

func TestParseLabelAndValueOverrides(t *testing.T) {
	opts := parseOptions(t, `<li role="option" data-autocomplete-label="Ada Lovelace" data-autocomplete-value="42">Ada L.</li>`)

	require.Len(t, opts, 1)
	assert.Equal(t, "Ada Lovelace", opts[0].Label)
	assert.Equal(t, "42", opts[0].Value)
}

func TestParseValueDefaultsToLabel(t *testing.T) {
	opts := parseOptions(t, `<li role="option">  Grace   Hopper </li>`)

	require.Len(t, opts, 1)
	assert.Equal(t, "Grace Hopper", opts[0].Label)
	assert.Equal(t, "Grace Hopper", opts[0].Value)
}

func TestParseDisabledFlag(t *testing.T) {
	opts := parseOptions(t, `
		<li role="option" aria-disabled="true">No matches</li>
		<li role="option">Real option</li>`)

	require.Len(t, opts, 2)
	assert.True(t, opts[0].Disabled)
	assert.False(t, opts[1].Disabled)
}

func TestParseNavigationalAnchor(t *testing.T) {
	opts := parseOptions(t, `
		<a role="option" href="/users/7">Jane Doe</a>
		<li role="option">Plain</li>`)

	require.Len(t, opts, 2)
	assert.True(t, opts[0].Navigational())
	assert.Equal(t, "/users/7", opts[0].Href)
	assert.False(t, opts[1].Navigational())
}

func TestParseGeneratesUniquePrefixedIDs(t *testing.T) {
	p := NewParser("city-list")
	rs, err := p.Parse(`<li role="option">Lyon</li><li role="option">Lille</li>`)
	require.NoError(t, err)

	opts := rs.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, "city-list-option-1", opts[0].ID)
	assert.Equal(t, "city-list-option-2", opts[1].ID)

	// The counter keeps increasing across fetches of the same widget.
	rs2, err := p.Parse(`<li role="option">Nantes</li>`)
	require.NoError(t, err)
	assert.Equal(t, "city-list-option-3", rs2.Options()[0].ID)
}

func TestParseFallbackListID(t *testing.T) {
	p := NewParser("")
	rs, err := p.Parse(`<li role="option">One</li>`)
	require.NoError(t, err)
	assert.Equal(t, "typeahead-option-1", rs.Options()[0].ID)
}

func TestParseEmptyFragment(t *testing.T) {
	rs, err := NewParser("x").Parse("")
	require.NoError(t, err)
	assert.True(t, rs.Empty())
	assert.Equal(t, 0, rs.Len())
}

func TestResultSetIndexOf(t *testing.T) {
	rs := NewResultSet([]Option{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, 0, rs.IndexOf("a"))
	assert.Equal(t, 1, rs.IndexOf("b"))
	assert.Equal(t, -1, rs.IndexOf("missing"))

	var nilSet *ResultSet
	assert.Equal(t, -1, nilSet.IndexOf("a"))
	assert.Equal(t, 0, nilSet.Len())
}
