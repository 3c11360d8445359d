package vagrant

import (
	"strings"
)

// EncodedComma is the escape token vagrant substitutes for literal
// commas inside the data field of machine-readable output. The exact
// token is part of vagrant's output contract; treat it as opaque.
const EncodedComma = "%!(VAGRANT_COMMA)"

// ignorableKinds are record kinds vagrant 1.8 and later emit for
// progress and UI chatter. They arrive with variable field counts and
// carry nothing the parsers need, so the decoder tolerates and drops
// them instead of rejecting the line.
var ignorableKinds = map[string]bool{
	"metadata":    true,
	"ui":          true,
	"action":      true,
	"Description": true,
	"box-info":    true,
}

// record is one decoded machine-readable line:
//
//	timestamp,target,kind,data
//
// target may be empty for information not tied to a machine. data is
// kept verbatim, embedded commas and escape tokens included.
type record struct {
	timestamp string
	target    string
	kind      string
	data      string
}

// decodeMachineReadable splits machine-readable output into records,
// preserving input order. Each line splits at its first three commas
// only; everything after the third comma stays in the data field. Blank
// lines are skipped. A line with fewer than four fields is malformed
// unless its kind is ignorable noise.
func decodeMachineReadable(output string) ([]record, error) {
	var records []record
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 4)
		if len(fields) >= 3 && ignorableKinds[fields[2]] {
			continue
		}
		if len(fields) < 4 {
			return nil, &ParseError{Line: line, Output: output}
		}

		records = append(records, record{
			timestamp: fields[0],
			target:    fields[1],
			kind:      fields[2],
			data:      fields[3],
		})
	}
	return records, nil
}

// DecodeData replaces every EncodedComma token in a machine-readable
// data field with a literal comma.
func DecodeData(data string) string {
	return strings.ReplaceAll(data, EncodedComma, ",")
}
