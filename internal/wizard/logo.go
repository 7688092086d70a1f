// internal/wizard/logo.go
package wizard

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/siemens-plc/internal/fields"
)

func (w *Wizard) logo(f LogoFields, typeErrs map[string]string) Outcome {
	log := w.log.WithFields(logrus.Fields{
		"family":      FamilyLogo,
		"ip":          f.IP,
		"local_tsap":  f.LocalTSAP,
		"remote_tsap": f.RemoteTSAP,
	})
	log.Debug("siemens logo! step submitted")

	// All checks run; type errors win for the fields they name.
	if errs := merge(ValidateLogo(f), typeErrs); len(errs) > 0 {
		log.WithField("errors", errs).Debug("siemens logo! fields rejected")
		return validationFailed(FamilyLogo, errs)
	}

	var result error
	id, err := guard(func() (string, error) {
		return w.probeLogo(f, &result)
	})
	if err != nil {
		log.WithError(err).
			WithField("connection_result", result).
			Error("could not connect the siemens logo!")
		return connectionFailed(FamilyLogo, err)
	}

	title := f.Name
	if title == "" {
		title = fmt.Sprintf("Siemens Logo! on %s", f.IP)
	}

	log.WithField("id", id).Info("siemens logo! connected")

	return Outcome{
		Kind:   Connected,
		Family: FamilyLogo,
		Record: &Record{
			Title: title,
			Type:  FamilyLogo,
			ID:    id,
			Connection: Connection{
				IP:         f.IP,
				LocalTSAP:  f.LocalTSAP,
				RemoteTSAP: f.RemoteTSAP,
			},
		},
	}
}

// probeLogo connects once and always releases the client. A nil connect
// result is the library's success sentinel; anything else is a failure.
func (w *Wizard) probeLogo(f LogoFields, result *error) (string, error) {
	local, err := fields.ParseTSAP(f.LocalTSAP)
	if err != nil {
		return "", err
	}
	remote, err := fields.ParseTSAP(f.RemoteTSAP)
	if err != nil {
		return "", err
	}

	libPath, err := w.library()
	if err != nil {
		return "", err
	}

	client, err := w.backend.NewLogo(libPath)
	if err != nil {
		return "", fmt.Errorf("logo client: %w", err)
	}
	rel := &releaser{fn: client.Disconnect}
	defer rel.release()

	*result = client.Connect(f.IP, local, remote)
	if *result != nil {
		return "", fmt.Errorf("logo connect: %w", *result)
	}

	// The probe client is not reused.
	if err := rel.release(); err != nil {
		return "", fmt.Errorf("logo disconnect: %w", err)
	}

	return w.deviceID(FamilyLogo, f.IP)
}
