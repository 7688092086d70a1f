// internal/wizard/form.go
package wizard

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecodeLogo reads host form values into LogoFields.
// A value of the wrong type is reported as that field's error key;
// it never aborts the decode of the other fields.
func DecodeLogo(form map[string]any) (LogoFields, map[string]string) {
	var f LogoFields
	errs := map[string]string{}

	decodeInto(form, FieldName, &f.Name, ErrInvalidName, errs)
	decodeInto(form, FieldIP, &f.IP, ErrInvalidIP, errs)
	decodeInto(form, FieldLocalTSAP, &f.LocalTSAP, ErrInvalidLocalTSAP, errs)
	decodeInto(form, FieldRemoteTSAP, &f.RemoteTSAP, ErrInvalidRemoteTSAP, errs)

	return f, errs
}

// DecodeS7 reads host form values into S7Fields. Missing or non-integer
// rack/slot values are reported as invalid.
func DecodeS7(form map[string]any) (S7Fields, map[string]string) {
	var f S7Fields
	errs := map[string]string{}

	decodeInto(form, FieldName, &f.Name, ErrInvalidName, errs)
	decodeInto(form, FieldIP, &f.IP, ErrInvalidIP, errs)

	if !decodeInto(form, FieldRack, &f.Rack, ErrInvalidRack, errs) {
		errs[FieldRack] = ErrInvalidRack
	}
	if !decodeInto(form, FieldSlot, &f.Slot, ErrInvalidSlot, errs) {
		errs[FieldSlot] = ErrInvalidSlot
	}

	return f, errs
}

// decodeInto decodes form[key] into out. It returns false when the key
// is absent or nil. A decode failure records errKey under key.
func decodeInto(form map[string]any, key string, out any, errKey string, errs map[string]string) bool {
	raw, ok := form[key]
	if !ok || raw == nil {
		return false
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: integralNumbers,
		Result:     out,
	})
	if err != nil {
		errs[key] = errKey
		return true
	}
	if err := dec.Decode(raw); err != nil {
		errs[key] = errKey
	}
	return true
}

// integralNumbers refuses to truncate fractional floats into ints.
// JSON numbers arrive as float64, so whole floats are allowed.
func integralNumbers(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		v := reflect.ValueOf(data).Float()
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("not an integer: %v", v)
		}
		return int(v), nil
	}
	return data, nil
}
