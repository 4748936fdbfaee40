package service

import (
	"time"

	"github.com/google/uuid"
)

// SaveOptions tunes a single company or contact save.
type SaveOptions struct {
	// ForceBypassDuplicateCheck skips the duplicate guard for this save
	// only. It is set when the user chose "save anyway".
	ForceBypassDuplicateCheck bool
}

// Option configures the shared dependencies of every service.
type Option func(*deps)

type deps struct {
	now      func() time.Time
	newID    func() string
	author   string
	observer UseCaseObserver
}

func newDeps(opts []Option) deps {
	d := deps{
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithClock replaces time.Now. Its location decides how typed dates are
// read and where agenda days begin.
func WithClock(now func() time.Time) Option {
	return func(d *deps) {
		if now != nil {
			d.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(d *deps) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// WithAuthor sets the email recorded as author of notes, activities and tags.
func WithAuthor(email string) Option {
	return func(d *deps) { d.author = email }
}

func WithObserver(obs UseCaseObserver) Option {
	return func(d *deps) {
		if obs != nil {
			d.observer = obs
		}
	}
}

func (d deps) timestamp() string {
	return formatNow(d.now())
}
