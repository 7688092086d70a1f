// cmd/siemensplc/output.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// printResult writes v as YAML, or indented JSON when asJSON is set.
func printResult(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// outcomeErr turns a non-connected outcome into the command's error.
func outcomeErr(out wizard.Outcome) error {
	switch out.Kind {
	case wizard.Connected:
		return nil
	case wizard.ValidationFailed:
		return fmt.Errorf("%s: %s", out.Family, strings.Join(out.ErrorKeys(), ", "))
	}
	return fmt.Errorf("%s: %s", out.Family, out.Reason)
}
