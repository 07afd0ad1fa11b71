package jats

import "time"

// Options controls the few environment dependent parts of a render.
type Options struct {
	// Now supplies the copyright year.
	Now func() time.Time
	// LegacyAffiliations reproduces the historical aff output: every <aff>
	// carries the last author's affiliation text and the list is only
	// written when that last author has affiliation data.
	LegacyAffiliations bool
}

// Option mutates Options.
type Option func(*Options)

// WithClock sets the time source used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithLegacyAffiliations toggles LegacyAffiliations.
func WithLegacyAffiliations(on bool) Option {
	return func(o *Options) {
		o.LegacyAffiliations = on
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{Now: time.Now}
	for _, fn := range opts {
		fn(o)
	}
	return o
}
