package widget

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/typeahead/internal/fetch"
)

// Option customizes a Widget at construction time.
type Option func(*Widget)

// WithFetcher replaces the HTTP fetcher, mainly for tests and embedders with
// their own transport.
func WithFetcher(f fetch.Fetcher) Option {
	return func(w *Widget) {
		w.fetcher = f
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log *logr.Logger) Option {
	return func(w *Widget) {
		if log != nil {
			w.log = log
		}
	}
}

// WithIDs sets the identities used in toggle notifications and as the
// prefix for generated option ids.
func WithIDs(inputID, listID string) Option {
	return func(w *Widget) {
		if inputID != "" {
			w.inputID = inputID
		}
		if listID != "" {
			w.listID = listID
		}
	}
}

// WithoutHiddenOutput makes commits write straight to the visible input
// instead of a separate hidden output field.
func WithoutHiddenOutput() Option {
	return func(w *Widget) {
		w.useHidden = false
	}
}
