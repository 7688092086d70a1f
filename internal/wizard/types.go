// internal/wizard/types.go
package wizard

import (
	"fmt"
	"sort"
	"time"
)

// Family selects the wizard branch.
type Family string

const (
	FamilyLogo Family = "logo"
	FamilyS7   Family = "s7"
)

// Families lists the menu options in display order.
var Families = []Family{FamilyLogo, FamilyS7}

// ParseFamily accepts the menu option names.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyLogo, FamilyS7:
		return Family(s), nil
	}
	return "", fmt.Errorf("wizard: unknown device family %q", s)
}

// ---- FIELDS ----

// Form field names.
const (
	FieldName       = "name"
	FieldIP         = "ip"
	FieldLocalTSAP  = "local_tsap"
	FieldRemoteTSAP = "remote_tsap"
	FieldRack       = "rack"
	FieldSlot       = "slot"

	// FieldBase carries errors not tied to one field.
	FieldBase = "base"
)

// Error keys surfaced to the host.
const (
	ErrInvalidName       = "invalid_name"
	ErrInvalidIP         = "invalid_ip"
	ErrInvalidLocalTSAP  = "invalid_local_tsap"
	ErrInvalidRemoteTSAP = "invalid_remote_tsap"
	ErrInvalidRack       = "invalid_rack"
	ErrInvalidSlot       = "invalid_slot"
	ErrUnknownFamily     = "unknown_family"
)

// Connection failure reasons.
const (
	ReasonCannotConnect       = "cannot_connect"
	ReasonUnsupportedPlatform = "unsupported_platform"
)

// LogoFields is one Logo! submission. Name is optional.
type LogoFields struct {
	Name       string
	IP         string
	LocalTSAP  string
	RemoteTSAP string
}

// S7Fields is one S7 submission. Name is optional.
type S7Fields struct {
	Name string
	IP   string
	Rack int
	Slot int
}

// ---- RECORD ----

// Record is the finalized configuration entry handed to the host.
type Record struct {
	Title      string     `json:"title" yaml:"title"`
	Type       Family     `json:"type" yaml:"type"`
	ID         string     `json:"id" yaml:"id"`
	Connection Connection `json:"connection" yaml:"connection"`
}

// Connection holds the parameters of one family; the other family's
// fields stay empty and are omitted.
type Connection struct {
	IP         string `json:"ip" yaml:"ip"`
	LocalTSAP  string `json:"local_tsap,omitempty" yaml:"local_tsap,omitempty"`
	RemoteTSAP string `json:"remote_tsap,omitempty" yaml:"remote_tsap,omitempty"`
	Rack       *int   `json:"rack,omitempty" yaml:"rack,omitempty"`
	Slot       *int   `json:"slot,omitempty" yaml:"slot,omitempty"`
}

// ---- OUTCOME ----

// Kind is the terminal state of one submission.
type Kind string

const (
	Connected        Kind = "connected"
	ConnectionFailed Kind = "connection_failed"
	ValidationFailed Kind = "validation_failed"
)

// Outcome is what a step returns. Exactly one of Record, Reason,
// FieldErrors is set, matching Kind.
type Outcome struct {
	Kind        Kind              `json:"kind" yaml:"kind"`
	Family      Family            `json:"family,omitempty" yaml:"family,omitempty"`
	Record      *Record           `json:"record,omitempty" yaml:"record,omitempty"`
	Reason      string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	FieldErrors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Err is the fault behind a ConnectionFailed outcome.
	Err error `json:"-" yaml:"-"`
	// Duration covers validation and probe.
	Duration time.Duration `json:"-" yaml:"-"`
}

// ErrorKeys returns the error keys sorted by field name.
func (o Outcome) ErrorKeys() []string {
	fields := make([]string, 0, len(o.FieldErrors))
	for f := range o.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, o.FieldErrors[f])
	}
	return keys
}

// ResultError is a connect result other than the family's success sentinel.
type ResultError struct {
	Family Family
	Code   int
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s connect returned %d", e.Family, e.Code)
}

// ErrorCode folds the result into 16 bits for status reporting:
// the TCP word when set, otherwise the ISO/client word.
func (e *ResultError) ErrorCode() uint16 {
	c := uint32(e.Code)
	if lo := uint16(c & 0xFFFF); lo != 0 {
		return lo
	}
	return uint16(c >> 16)
}
