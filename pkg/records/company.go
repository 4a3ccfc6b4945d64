package records

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CompanyValue is either plain text or a staff list.
type CompanyValue struct {
	Text  string
	Staff []StaffMember

	staff bool
}

// TextValue builds a plain-text company value.
func TextValue(text string) CompanyValue {
	return CompanyValue{Text: text}
}

// StaffValue builds a staff-list company value.
func StaffValue(members ...StaffMember) CompanyValue {
	return CompanyValue{Staff: append([]StaffMember{}, members...), staff: true}
}

// IsStaffList reports whether the value holds a staff list (possibly empty).
func (v CompanyValue) IsStaffList() bool {
	return v.staff
}

// UnmarshalJSON resolves the variant from the JSON token: arrays become staff
// lists, strings become text, and other scalars keep their literal form.
func (v *CompanyValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return errors.New("records: company value is null")
	case trimmed[0] == '[':
		var members []StaffMember
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return err
		}
		*v = StaffValue(members...)
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*v = TextValue(text)
	case trimmed[0] == '{':
		return errors.New("records: company value must be a string or a list")
	default:
		*v = TextValue(string(trimmed))
	}
	return nil
}

// MarshalJSON writes the variant back in the form it was read.
func (v CompanyValue) MarshalJSON() ([]byte, error) {
	if v.staff {
		members := v.Staff
		if members == nil {
			members = []StaffMember{}
		}
		return marshalRaw(members)
	}
	return marshalRaw(v.Text)
}

// marshalRaw encodes without HTML escaping; values hold trusted markup.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
