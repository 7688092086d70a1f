// internal/wizard/validate.go
package wizard

import "github.com/tamzrod/siemens-plc/internal/fields"

// ValidateLogo runs every Logo! field check and returns one error key
// per invalid field. Nil means the submission may be probed.
func ValidateLogo(f LogoFields) map[string]string {
	errs := map[string]string{}

	if f.Name != "" && !fields.ValidName(f.Name) {
		errs[FieldName] = ErrInvalidName
	}
	if !fields.ValidIPv4(f.IP) {
		errs[FieldIP] = ErrInvalidIP
	}
	if !fields.ValidTSAP(f.LocalTSAP) {
		errs[FieldLocalTSAP] = ErrInvalidLocalTSAP
	}
	if !fields.ValidTSAP(f.RemoteTSAP) {
		errs[FieldRemoteTSAP] = ErrInvalidRemoteTSAP
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateS7 runs every S7 field check, same contract as ValidateLogo.
func ValidateS7(f S7Fields) map[string]string {
	errs := map[string]string{}

	if f.Name != "" && !fields.ValidName(f.Name) {
		errs[FieldName] = ErrInvalidName
	}
	if !fields.ValidIPv4(f.IP) {
		errs[FieldIP] = ErrInvalidIP
	}
	if !fields.ValidRackOrSlot(f.Rack) {
		errs[FieldRack] = ErrInvalidRack
	}
	if !fields.ValidRackOrSlot(f.Slot) {
		errs[FieldSlot] = ErrInvalidSlot
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// merge lays type errors over check errors; both are field-keyed.
func merge(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = map[string]string{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
