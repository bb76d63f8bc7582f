// Package widget implements the type-ahead interaction core: visibility of
// the result list, the single selection within it, commit semantics, and the
// debounced fetch pipeline feeding it. All state is owned here and exposed
// through snapshots; render layers reflect it outward.
package widget

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/typeahead/internal/config"
	"github.com/oakwood-commons/typeahead/internal/debounce"
	"github.com/oakwood-commons/typeahead/internal/event"
	"github.com/oakwood-commons/typeahead/internal/fetch"
	"github.com/oakwood-commons/typeahead/internal/fragment"
	"github.com/oakwood-commons/typeahead/pkg/logger"
)

// DefaultInputID identifies the input surface in toggle notifications when
// the host does not assign one.
const DefaultInputID = "typeahead-input"

// Widget is one type-ahead instance. A mutex serializes every state
// mutation; debounce timer callbacks and fetch completions re-enter through
// it, so interleaved event callbacks never observe partial transitions.
// Notifications are delivered after the lock is released.
type Widget struct {
	mu sync.Mutex

	cfg     config.Settings
	log     *logr.Logger
	emitter *event.Emitter
	fetcher fetch.Fetcher
	sched   *debounce.Scheduler
	parser  *fragment.Parser

	inputID string
	listID  string

	results     *fragment.ResultSet
	selected    int
	open        bool
	inputValue  string
	hiddenValue string
	useHidden   bool
	pointerDown bool
	seq         uint64
	destroyed   bool
}

// New creates a widget from normalized settings. Without WithFetcher, a
// configured endpoint URL gets an HTTP fetcher; an empty URL leaves fetching
// silently disabled.
func New(cfg config.Settings, opts ...Option) *Widget {
	cfg = cfg.Normalize()
	w := &Widget{
		cfg:       cfg,
		log:       logger.GetNoopLogger(),
		emitter:   event.NewEmitter(),
		inputID:   DefaultInputID,
		listID:    fragment.FallbackListID,
		selected:  -1,
		useHidden: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.parser = fragment.NewParser(w.listID)
	if w.fetcher == nil && cfg.FetchEnabled() {
		w.fetcher = fetch.NewHTTPFetcher(cfg.URL, cfg.QueryParam, nil)
	}
	w.sched = debounce.New(cfg.DebounceDelay())
	return w
}

// Events exposes the notification emitter for subscribers.
func (w *Widget) Events() *event.Emitter {
	return w.emitter
}

// Settings returns the widget's immutable configuration.
func (w *Widget) Settings() config.Settings {
	return w.cfg
}

// Snapshot is the externally visible state at one point in time.
type Snapshot struct {
	Open           bool
	Options        []fragment.Option
	Selected       int
	ActiveOptionID string
	InputValue     string
	CommittedValue string
	InputID        string
	ListID         string
}

// State returns a consistent snapshot for rendering.
func (w *Widget) State() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Open:           w.open,
		Options:        w.results.Options(),
		Selected:       w.selected,
		ActiveOptionID: w.activeOptionIDLocked(),
		InputValue:     w.inputValue,
		CommittedValue: w.hiddenValue,
		InputID:        w.inputID,
		ListID:         w.listID,
	}
}

// Expanded reports whether the result list is presented.
func (w *Widget) Expanded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// ActiveOptionID returns the id of the selected option, or "" when the list
// is closed or nothing is selected.
func (w *Widget) ActiveOptionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeOptionIDLocked()
}

func (w *Widget) activeOptionIDLocked() string {
	if !w.open || w.selected < 0 || w.selected >= w.results.Len() {
		return ""
	}
	return w.results.At(w.selected).ID
}

// Value returns the visible input surface value.
func (w *Widget) Value() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inputValue
}

// CommittedValue returns the hidden output value, "" when nothing committed.
func (w *Widget) CommittedValue() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hiddenValue
}

// OnInput reacts to a changed input value: the committed output is cleared,
// and a fetch is debounce-scheduled when the trimmed query reaches the
// minimum length, otherwise the list closes and empties.
func (w *Widget) OnInput(value string) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.inputValue = value
	w.hiddenValue = ""

	query := strings.TrimSpace(value)
	var evs []event.Event
	if utf8.RuneCountInString(query) >= w.cfg.MinLength && w.fetcher != nil {
		w.sched.Schedule(func() {
			if err := w.fetchQuery(context.Background(), query); err != nil {
				w.log.Error(err, "suggestion fetch failed", "query", query)
			}
		})
	} else {
		w.sched.Cancel()
		evs = append(w.closeLocked(), w.clearResultsLocked()...)
	}
	w.mu.Unlock()
	w.emit(evs)
}

// OnFocus reveals suggestions on focus when configured and nothing has been
// committed yet.
func (w *Widget) OnFocus() {
	w.revealIf(w.cfg.RevealOnFocus)
}

// OnInputClick reveals suggestions on click when configured and nothing has
// been committed yet.
func (w *Widget) OnInputClick() {
	w.revealIf(w.cfg.RevealOnClick)
}

func (w *Widget) revealIf(enabled bool) {
	w.mu.Lock()
	if w.destroyed || w.hiddenValue != "" || !enabled || w.fetcher == nil {
		w.mu.Unlock()
		return
	}
	query := strings.TrimSpace(w.inputValue)
	w.mu.Unlock()

	go func() {
		if err := w.fetchQuery(context.Background(), query); err != nil {
			w.log.Error(err, "suggestion fetch failed", "query", query)
		}
	}()
}

// OnListPointerDown marks a pointer interaction with the result list so the
// blur that follows does not close it.
func (w *Widget) OnListPointerDown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pointerDown = true
}

// OnListPointerUp clears the transient pointer-down flag.
func (w *Widget) OnListPointerUp() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pointerDown = false
}

// OnBlur closes the list unless a pointer interaction with it is still in
// progress.
func (w *Widget) OnBlur() {
	w.mu.Lock()
	if w.pointerDown {
		w.mu.Unlock()
		return
	}
	evs := w.closeLocked()
	w.mu.Unlock()
	w.emit(evs)
}

// ClickOption commits the option with the given id. Unknown ids are ignored.
func (w *Widget) ClickOption(id string) {
	w.mu.Lock()
	idx := w.results.IndexOf(id)
	if idx < 0 {
		w.mu.Unlock()
		return
	}
	evs := w.commitLocked(w.results.At(idx))
	w.mu.Unlock()
	w.emit(evs)
}

// Advance moves the selection to the next (forward) or previous option with
// wraparound and returns it. It returns nil only on an empty result set.
func (w *Widget) Advance(forward bool) *fragment.Option {
	w.mu.Lock()
	opt := w.advanceLocked(forward)
	w.mu.Unlock()
	return opt
}

// Select moves the selection to index i, e.g. on pointer hover. Out-of-range
// indices are ignored.
func (w *Widget) Select(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= w.results.Len() {
		return
	}
	w.selected = i
}

func (w *Widget) advanceLocked(forward bool) *fragment.Option {
	n := w.results.Len()
	if n == 0 {
		return nil
	}
	idx := w.selected
	if forward {
		idx = (idx + 1) % n
	} else if idx < 0 {
		idx = n - 1
	} else {
		idx = (idx - 1 + n) % n
	}
	w.selected = idx
	opt := w.results.At(idx)
	return &opt
}

// Commit finalizes a chosen option: disabled options are ignored,
// navigational ones only close the list, and everything else writes the
// option's label to the input and its value to the output.
func (w *Widget) Commit(opt fragment.Option) {
	w.mu.Lock()
	evs := w.commitLocked(opt)
	w.mu.Unlock()
	w.emit(evs)
}

func (w *Widget) commitLocked(opt fragment.Option) []event.Event {
	if opt.Disabled {
		return nil
	}
	if opt.Navigational() {
		// Navigation proceeds natively; no value commit.
		return w.closeLocked()
	}
	w.inputValue = opt.Label
	return w.commitValueLocked(opt.Value, opt.Label, opt.ID)
}

// CommitValue finalizes a raw value, bypassing option resolution. Used for
// free-typed values when RequireMatch is disabled.
func (w *Widget) CommitValue(value string) {
	w.mu.Lock()
	evs := w.commitValueLocked(value, "", "")
	w.mu.Unlock()
	w.emit(evs)
}

func (w *Widget) commitValueLocked(value, textValue, optionID string) []event.Event {
	if w.useHidden {
		w.hiddenValue = value
	} else {
		w.inputValue = value
	}
	evs := w.closeLocked()
	evs = append(evs, w.clearResultsLocked()...)
	evs = append(evs, event.ChangeEvent{Value: value, TextValue: textValue, OptionID: optionID})
	return evs
}

// Clear empties the visible input and the committed output without emitting
// a change notification.
func (w *Widget) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inputValue = ""
	w.hiddenValue = ""
}

// Open presents the result list if it holds options. Idempotent.
func (w *Widget) Open() {
	w.mu.Lock()
	evs := w.openLocked()
	w.mu.Unlock()
	w.emit(evs)
}

// Close hides the result list and drops the active option reference.
// Idempotent: closing a closed widget emits nothing.
func (w *Widget) Close() {
	w.mu.Lock()
	evs := w.closeLocked()
	w.mu.Unlock()
	w.emit(evs)
}

func (w *Widget) openLocked() []event.Event {
	if w.open || w.results.Empty() {
		return nil
	}
	w.open = true
	return []event.Event{event.ToggleEvent{Action: event.ToggleOpen, Input: w.inputID, List: w.listID}}
}

func (w *Widget) closeLocked() []event.Event {
	if !w.open {
		return nil
	}
	w.open = false
	w.selected = -1
	return []event.Event{event.ToggleEvent{Action: event.ToggleClose, Input: w.inputID, List: w.listID}}
}

func (w *Widget) clearResultsLocked() []event.Event {
	w.results = nil
	w.selected = -1
	return nil
}

// Refresh synchronously fetches suggestions for the current input value.
// The returned error is the one announced through the error notification.
func (w *Widget) Refresh(ctx context.Context) error {
	w.mu.Lock()
	query := strings.TrimSpace(w.inputValue)
	w.mu.Unlock()
	return w.fetchQuery(ctx, query)
}

// fetchQuery runs one fetch attempt end to end: loadstart, the request,
// load/error, loadend, then the result-set replacement. Responses that are
// no longer the most recently issued fetch are discarded.
func (w *Widget) fetchQuery(ctx context.Context, query string) error {
	w.mu.Lock()
	if w.destroyed || w.fetcher == nil {
		w.mu.Unlock()
		return nil
	}
	w.seq++
	token := w.seq
	fetcher := w.fetcher
	w.mu.Unlock()

	w.emit([]event.Event{event.LoadStartEvent{Query: query}})

	markup, fetchErr := fetcher.Fetch(ctx, query)

	evs, err := w.finishFetch(token, query, markup, fetchErr)
	w.emit(evs)
	return err
}

func (w *Widget) finishFetch(token uint64, query, markup string, fetchErr error) ([]event.Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fetchErr != nil {
		return []event.Event{
			event.ErrorEvent{Query: query, Err: fetchErr},
			event.LoadEndEvent{Query: query},
		}, fetchErr
	}

	evs := []event.Event{
		event.LoadEvent{Query: query},
		event.LoadEndEvent{Query: query},
	}

	if w.destroyed || token != w.seq {
		w.log.V(1).Info("discarding stale suggestion response", "query", query)
		return evs, nil
	}

	rs, err := w.parser.Parse(markup)
	if err != nil {
		return []event.Event{
			event.ErrorEvent{Query: query, Err: err},
			event.LoadEndEvent{Query: query},
		}, err
	}

	w.results = rs
	w.selected = -1
	if rs.Empty() {
		evs = append(evs, w.closeLocked()...)
	} else {
		w.selected = 0
		evs = append(evs, w.openLocked()...)
	}
	return evs, nil
}

// Destroy cancels the debounce timer and invalidates in-flight fetches. The
// widget accepts no further interaction.
func (w *Widget) Destroy() {
	w.mu.Lock()
	w.destroyed = true
	w.seq++
	w.mu.Unlock()
	w.sched.Stop()
}

func (w *Widget) emit(evs []event.Event) {
	for _, ev := range evs {
		w.emitter.Publish(ev)
	}
}
