package widget

import (
	"context"
	"strings"

	"github.com/oakwood-commons/typeahead/internal/event"
	"github.com/oakwood-commons/typeahead/internal/fragment"
)

// Key identifies a keyboard input the dispatcher reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyTab
	KeyEnter
)

// KeyOutcome tells the host what to do with the originating event.
type KeyOutcome struct {
	// PreventDefault suppresses the input's default behavior.
	PreventDefault bool
	// StopPropagation suppresses further delivery of the event.
	StopPropagation bool
}

// keyHandler mutates widget state under the lock and reports the outcome,
// pending notifications, and whether a fetch must be started afterwards.
type keyHandler func(w *Widget) (KeyOutcome, []event.Event, bool)

// keyHandlers is the enumerated key-to-handler table. Key dispatch resolves
// through this lookup, never through dynamic name construction.
var keyHandlers = map[Key]keyHandler{
	KeyEscape:    (*Widget).handleEscapeLocked,
	KeyArrowDown: (*Widget).handleArrowDownLocked,
	KeyArrowUp:   (*Widget).handleArrowUpLocked,
	KeyTab:       (*Widget).handleTabLocked,
	KeyEnter:     (*Widget).handleEnterLocked,
}

// HandleKey dispatches one keyboard input through the key table. Unknown
// keys fall through untouched.
func (w *Widget) HandleKey(k Key) KeyOutcome {
	handler, ok := keyHandlers[k]
	if !ok {
		return KeyOutcome{}
	}

	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return KeyOutcome{}
	}
	outcome, evs, wantFetch := handler(w)
	var query string
	if wantFetch {
		query = strings.TrimSpace(w.inputValue)
	}
	w.mu.Unlock()

	w.emit(evs)
	if wantFetch {
		go func() {
			if err := w.fetchQuery(context.Background(), query); err != nil {
				w.log.Error(err, "suggestion fetch failed", "query", query)
			}
		}()
	}
	return outcome
}

// Escape closes and empties an open result list; a closed widget lets the
// key pass through.
func (w *Widget) handleEscapeLocked() (KeyOutcome, []event.Event, bool) {
	if !w.open {
		return KeyOutcome{}, nil, false
	}
	evs := append(w.closeLocked(), w.clearResultsLocked()...)
	return KeyOutcome{PreventDefault: true, StopPropagation: true}, evs, false
}

// ArrowDown moves the selection forward while the list is open; with the
// list closed it reveals suggestions when RevealOnKeyDown is set.
func (w *Widget) handleArrowDownLocked() (KeyOutcome, []event.Event, bool) {
	if w.open {
		if w.advanceLocked(true) != nil {
			return KeyOutcome{PreventDefault: true}, nil, false
		}
		return KeyOutcome{}, nil, false
	}
	if w.cfg.RevealOnKeyDown && w.fetcher != nil {
		return KeyOutcome{PreventDefault: true}, nil, true
	}
	return KeyOutcome{}, nil, false
}

// ArrowUp moves the selection backward with wraparound.
func (w *Widget) handleArrowUpLocked() (KeyOutcome, []event.Event, bool) {
	if w.open && w.advanceLocked(false) != nil {
		return KeyOutcome{PreventDefault: true}, nil, false
	}
	return KeyOutcome{}, nil, false
}

// Tab commits the current selection but never swallows tab-navigation.
func (w *Widget) handleTabLocked() (KeyOutcome, []event.Event, bool) {
	if opt, ok := w.selectedOptionLocked(); ok {
		return KeyOutcome{}, w.commitLocked(opt), false
	}
	return KeyOutcome{}, nil, false
}

// Enter commits the selection when one exists, or the typed value verbatim
// when free values are allowed. SubmitOnEnter leaves the default submit
// behavior intact.
func (w *Widget) handleEnterLocked() (KeyOutcome, []event.Event, bool) {
	suppress := KeyOutcome{PreventDefault: !w.cfg.SubmitOnEnter}

	if opt, ok := w.selectedOptionLocked(); ok && w.open {
		return suppress, w.commitLocked(opt), false
	}
	if !w.cfg.RequireMatch && strings.TrimSpace(w.inputValue) != "" {
		return suppress, w.commitValueLocked(w.inputValue, "", ""), false
	}
	return KeyOutcome{}, nil, false
}

func (w *Widget) selectedOptionLocked() (fragment.Option, bool) {
	if w.selected < 0 || w.selected >= w.results.Len() {
		return fragment.Option{}, false
	}
	return w.results.At(w.selected), true
}
