package records

import (
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagesync/pkg/dataset"
)

const (
	codeRecordInvalid = "RECORD_VALIDATION_FAILED"
	codeDecodeFailed  = "PAYLOAD_DECODE_FAILED"
)

// Decode resolves every raw record of doc into T, preserving order. The first
// record that is not an object, misses a required key or fails to decode
// aborts the whole sequence.
func Decode[T Record](doc dataset.Document) ([]T, error) {
	raws := doc.Records()
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		record, err := decodeOne[T](raw)
		if err != nil {
			return nil, wrapRecordError(err, doc.Location(), i)
		}
		out = append(out, record)
	}
	return out, nil
}

// Validate checks that a record about to be written carries every required
// key. Used when authoring records.
func Validate[T Record](record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = decodeOne[T](raw)
	return err
}

func decodeOne[T Record](raw json.RawMessage) (T, error) {
	var zero T

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return zero, decodeError{reason: "record must be an object"}
	}

	rule := validation.Map(zero.keyRules()...).AllowExtraKeys()
	if err := validation.Validate(fields, rule); err != nil {
		return zero, err
	}

	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return zero, decodeError{reason: err.Error()}
	}
	return record, nil
}

type decodeError struct {
	reason string
}

func (e decodeError) Error() string {
	return e.reason
}

func wrapRecordError(err error, location string, index int) error {
	message := fmt.Sprintf("%s: record %d: %v", location, index, err)
	code := codeRecordInvalid
	if _, ok := err.(decodeError); ok {
		code = codeDecodeFailed
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(code)
}

func indexKey(i int) string {
	return strconv.Itoa(i)
}
