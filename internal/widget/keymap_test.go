package widget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/typeahead/internal/config"
	"github.com/oakwood-commons/typeahead/internal/event"
)

func TestEscapeClosesAndClearsResults(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a", "b"))
	openWithOptions(t, w, "a", "b")

	out := w.HandleKey(KeyEscape)

	assert.True(t, out.PreventDefault)
	assert.True(t, out.StopPropagation)
	assert.False(t, w.Expanded())
	assert.Empty(t, w.State().Options)
}

func TestEscapeOnClosedWidgetPassesThrough(t *testing.T) {
	w, rec := newTestWidget(t, config.DefaultSettings(), "")

	out := w.HandleKey(KeyEscape)

	assert.Equal(t, KeyOutcome{}, out)
	assert.Empty(t, rec.kinds())
}

func TestArrowDownAdvancesOpenList(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a", "b"))
	openWithOptions(t, w, "a", "b")

	out := w.HandleKey(KeyArrowDown)

	assert.True(t, out.PreventDefault)
	assert.False(t, out.StopPropagation)
	assert.Equal(t, 1, w.State().Selected)
}

func TestArrowDownRevealsClosedList(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a"))
	require.False(t, w.Expanded())

	out := w.HandleKey(KeyArrowDown)
	assert.True(t, out.PreventDefault)

	require.Eventually(t, w.Expanded, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, w.State().Selected)
}

func TestArrowDownRevealDisabled(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.RevealOnKeyDown = false
	w, rec := newTestWidget(t, cfg, optionsMarkup("a"))

	out := w.HandleKey(KeyArrowDown)

	assert.Equal(t, KeyOutcome{}, out)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, rec.byKind(event.KindLoadStart))
}

func TestArrowUpWrapsToLastOption(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a", "b", "c"))
	openWithOptions(t, w, "a", "b", "c")

	out := w.HandleKey(KeyArrowUp)

	assert.True(t, out.PreventDefault)
	// Selection started at 0; backward from 0 lands on the last option.
	st := w.State()
	assert.Equal(t, 2, st.Selected)
	assert.Equal(t, "c", st.Options[st.Selected].Label)
}

func TestArrowUpOnClosedListIsInert(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a"))
	openWithOptions(t, w, "a")
	w.OnBlur()
	require.False(t, w.Expanded())

	out := w.HandleKey(KeyArrowUp)

	assert.Equal(t, KeyOutcome{}, out)
}

func TestTabCommitsWithoutSuppressingNavigation(t *testing.T) {
	w, rec := newTestWidget(t, config.DefaultSettings(), optionsMarkup("pick me"))
	openWithOptions(t, w, "pick me")

	out := w.HandleKey(KeyTab)

	assert.Equal(t, KeyOutcome{}, out)
	assert.Equal(t, "pick me", w.Value())
	assert.Len(t, rec.byKind(event.KindChange), 1)
}

func TestEnterCommitsSelection(t *testing.T) {
	w, rec := newTestWidget(t, config.DefaultSettings(), optionsMarkup("first", "second"))
	openWithOptions(t, w, "first", "second")
	w.HandleKey(KeyArrowDown)

	out := w.HandleKey(KeyEnter)

	assert.True(t, out.PreventDefault)
	assert.Equal(t, "second", w.Value())
	assert.Len(t, rec.byKind(event.KindChange), 1)
}

func TestEnterFreeValueWhenMatchNotRequired(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.RequireMatch = false
	cfg.MinLength = 20 // keep input changes from scheduling fetches
	w, rec := newTestWidget(t, cfg, "")
	w.OnInput("free text")

	out := w.HandleKey(KeyEnter)

	assert.True(t, out.PreventDefault)
	assert.Equal(t, "free text", w.CommittedValue())

	changes := rec.byKind(event.KindChange)
	require.Len(t, changes, 1)
	assert.Equal(t, "free text", changes[0].(event.ChangeEvent).Value)
}

func TestEnterRequiresMatchByDefault(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.MinLength = 20
	w, rec := newTestWidget(t, cfg, "")
	w.OnInput("no match")

	out := w.HandleKey(KeyEnter)

	assert.Equal(t, KeyOutcome{}, out)
	assert.Empty(t, w.CommittedValue())
	assert.Empty(t, rec.byKind(event.KindChange))
}

func TestEnterSubmitOnEnterKeepsDefault(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.SubmitOnEnter = true
	w, _ := newTestWidget(t, cfg, optionsMarkup("go"))
	openWithOptions(t, w, "go")

	out := w.HandleKey(KeyEnter)

	assert.False(t, out.PreventDefault, "submit-on-enter leaves the default action intact")
	assert.Equal(t, "go", w.Value())
}

func TestUnknownKeyFallsThrough(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a"))
	openWithOptions(t, w, "a")

	out := w.HandleKey(Key(99))

	assert.Equal(t, KeyOutcome{}, out)
	assert.True(t, w.Expanded())
}

func TestHandleKeyAfterDestroyIsInert(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a"))
	openWithOptions(t, w, "a")
	w.Destroy()

	assert.Equal(t, KeyOutcome{}, w.HandleKey(KeyEnter))
}

func TestBlurDuringListPointerInteraction(t *testing.T) {
	w, _ := newTestWidget(t, config.DefaultSettings(), optionsMarkup("a"))
	openWithOptions(t, w, "a")

	w.OnListPointerDown()
	w.OnBlur()
	assert.True(t, w.Expanded(), "blur during list interaction keeps the list open")

	w.OnListPointerUp()
	w.OnBlur()
	assert.False(t, w.Expanded())
}

func TestClickOptionCommits(t *testing.T) {
	w, rec := newTestWidget(t, config.DefaultSettings(), optionsMarkup("alpha", "beta"))
	openWithOptions(t, w, "alpha", "beta")

	w.ClickOption(w.State().Options[1].ID)

	assert.Equal(t, "beta", w.Value())
	assert.Len(t, rec.byKind(event.KindChange), 1)

	w.ClickOption("does-not-exist")
	assert.Len(t, rec.byKind(event.KindChange), 1)
}

func TestRevealOnFocusFetches(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.RevealOnFocus = true
	w, _ := newTestWidget(t, cfg, optionsMarkup("hello"))

	w.OnFocus()

	require.Eventually(t, w.Expanded, time.Second, 10*time.Millisecond)
}

func TestRevealSkippedAfterCommit(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.RevealOnFocus = true
	w, rec := newTestWidget(t, cfg, optionsMarkup("hello"))
	w.CommitValue("done")
	base := len(rec.byKind(event.KindLoadStart))

	w.OnFocus()
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, rec.byKind(event.KindLoadStart), base)
	assert.False(t, w.Expanded())
}

func TestRefreshAfterDestroyIsNoop(t *testing.T) {
	f := &countingFetcher{body: optionsMarkup("a")}
	w := New(config.DefaultSettings(), WithFetcher(f))
	w.Destroy()

	require.NoError(t, w.Refresh(context.Background()))
	assert.Empty(t, f.recorded())
}
