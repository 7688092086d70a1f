// internal/wizard/wizard.go
package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/siemens-plc/internal/logging"
	"github.com/tamzrod/siemens-plc/internal/netid"
	"github.com/tamzrod/siemens-plc/internal/platform"
	"github.com/tamzrod/siemens-plc/internal/plc"
)

// LibraryFunc returns the native library path for this host.
type LibraryFunc func() (string, error)

// Observer is told about every outcome after the step finishes.
type Observer func(Outcome)

// Deps are the collaborators a Wizard needs.
type Deps struct {
	Library   LibraryFunc
	Backend   plc.Backend
	Resolver  netid.Resolver
	Log       logrus.FieldLogger
	Observers []Observer
}

// Wizard runs one submission at a time per configuration session:
// validate, probe once, report. It keeps no state between submissions.
type Wizard struct {
	library   LibraryFunc
	backend   plc.Backend
	resolver  netid.Resolver
	log       logrus.FieldLogger
	observers []Observer
}

// New validates deps. A nil Log discards diagnostics.
func New(d Deps) (*Wizard, error) {
	if d.Library == nil {
		return nil, errors.New("wizard: library locator required")
	}
	if d.Backend == nil {
		return nil, errors.New("wizard: client backend required")
	}
	if d.Resolver == nil {
		return nil, errors.New("wizard: hardware address resolver required")
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	return &Wizard{
		library:   d.Library,
		backend:   d.Backend,
		resolver:  d.Resolver,
		log:       d.Log,
		observers: d.Observers,
	}, nil
}

// Observe registers another outcome observer. Not safe for use while
// steps are running.
func (w *Wizard) Observe(o Observer) {
	w.observers = append(w.observers, o)
}

// Submit decodes raw form values and runs the family's step.
func (w *Wizard) Submit(family Family, form map[string]any) Outcome {
	switch family {
	case FamilyLogo:
		f, typeErrs := DecodeLogo(form)
		return w.finish(time.Now(), w.logo(f, typeErrs))
	case FamilyS7:
		f, typeErrs := DecodeS7(form)
		return w.finish(time.Now(), w.s7(f, typeErrs))
	}
	return w.finish(time.Now(), Outcome{
		Kind:        ValidationFailed,
		Family:      family,
		FieldErrors: map[string]string{FieldBase: ErrUnknownFamily},
	})
}

// SubmitLogo runs the Logo! step on typed fields.
func (w *Wizard) SubmitLogo(f LogoFields) Outcome {
	return w.finish(time.Now(), w.logo(f, nil))
}

// SubmitS7 runs the S7 step on typed fields.
func (w *Wizard) SubmitS7(f S7Fields) Outcome {
	return w.finish(time.Now(), w.s7(f, nil))
}

func (w *Wizard) finish(start time.Time, out Outcome) Outcome {
	out.Duration = time.Since(start)
	for _, o := range w.observers {
		o(out)
	}
	return out
}

// ---- STEP BOUNDARY ----

// guard runs one probe. Panics from the client layer become errors so
// nothing escapes to the host.
func guard(fn func() (string, error)) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("wizard: probe panicked: %v", r)
		}
	}()
	return fn()
}

// releaser calls the client's Disconnect at most once.
type releaser struct {
	fn   func() error
	done bool
	err  error
}

func (r *releaser) release() error {
	if r.done {
		return r.err
	}
	r.done = true
	r.err = r.fn()
	return r.err
}

func (w *Wizard) deviceID(family Family, ip string) (string, error) {
	mac, err := w.resolver.Lookup(ip)
	if err != nil {
		return "", fmt.Errorf("hardware address: %w", err)
	}
	return netid.DeviceID(string(family), mac), nil
}

func validationFailed(family Family, errs map[string]string) Outcome {
	return Outcome{Kind: ValidationFailed, Family: family, FieldErrors: errs}
}

func connectionFailed(family Family, err error) Outcome {
	reason := ReasonCannotConnect
	if errors.Is(err, platform.ErrUnsupportedPlatform) {
		reason = ReasonUnsupportedPlatform
	}
	return Outcome{Kind: ConnectionFailed, Family: family, Reason: reason, Err: err}
}
