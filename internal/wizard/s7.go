// internal/wizard/s7.go
package wizard

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

func (w *Wizard) s7(f S7Fields, typeErrs map[string]string) Outcome {
	log := w.log.WithFields(logrus.Fields{
		"family": FamilyS7,
		"ip":     f.IP,
		"rack":   f.Rack,
		"slot":   f.Slot,
	})
	log.Debug("siemens s7 step submitted")

	if errs := merge(ValidateS7(f), typeErrs); len(errs) > 0 {
		log.WithField("errors", errs).Debug("siemens s7 fields rejected")
		return validationFailed(FamilyS7, errs)
	}

	result := -1
	id, err := guard(func() (string, error) {
		return w.probeS7(f, &result)
	})
	if err != nil {
		log.WithError(err).
			WithField("s7_connection_result", result).
			Error("could not connect the siemens s7 plc")
		return connectionFailed(FamilyS7, err)
	}

	title := f.Name
	if title == "" {
		title = fmt.Sprintf("Siemens S7 PLC on %s", f.IP)
	}

	log.WithField("id", id).Info("siemens s7 plc connected")

	rack, slot := f.Rack, f.Slot
	return Outcome{
		Kind:   Connected,
		Family: FamilyS7,
		Record: &Record{
			Title: title,
			Type:  FamilyS7,
			ID:    id,
			Connection: Connection{
				IP:   f.IP,
				Rack: &rack,
				Slot: &slot,
			},
		},
	}
}

// probeS7 connects once and always releases the client. Result code 0
// is the only success; every other code is a failure.
func (w *Wizard) probeS7(f S7Fields, result *int) (string, error) {
	libPath, err := w.library()
	if err != nil {
		return "", err
	}

	client, err := w.backend.NewS7(libPath)
	if err != nil {
		return "", fmt.Errorf("s7 client: %w", err)
	}
	rel := &releaser{fn: client.Disconnect}
	defer rel.release()

	code, err := client.Connect(f.IP, f.Rack, f.Slot)
	*result = code
	if err != nil {
		return "", fmt.Errorf("s7 connect: %w", err)
	}
	if code != 0 {
		return "", &ResultError{Family: FamilyS7, Code: code}
	}

	if err := rel.release(); err != nil {
		return "", fmt.Errorf("s7 disconnect: %w", err)
	}

	return w.deviceID(FamilyS7, f.IP)
}
