package submission

import (
	"bytes"
	"encoding/json"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetform/pkg/model"
)

const textCodeMalformedJSON = "SUBMISSION_MALFORMED_JSON"

// UnmarshalJSON decodes {"key": {"value": ...}, ...} keeping key order. A
// bare string or array is shorthand for {"value": ...}; an object without a
// value entry is recorded with HasValue false.
func (s *Submission) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return malformedJSON(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return malformedJSON(fmt.Errorf("expected object, got %v", tok))
	}

	*s = Submission{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformedJSON(err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return malformedJSON(err)
		}
		field, err := decodeField(key, raw)
		if err != nil {
			return malformedJSON(err)
		}
		if existing, ok := s.Lookup(key); ok {
			existing.Value, existing.HasValue = field.Value, field.HasValue
			*s.entry(key) = existing
			continue
		}
		s.Fields = append(s.Fields, field)
	}
	if _, err := dec.Token(); err != nil {
		return malformedJSON(err)
	}
	return nil
}

// MarshalJSON encodes the submission as {"key": {"value": ...}} in order.
func (s Submission) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		body := map[string]any{}
		if field.HasValue {
			body["value"] = field.Value
		}
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeField(key string, raw json.RawMessage) (Field, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return Field{}, err
		}
		payload, ok := wrapper["value"]
		if !ok {
			return Field{Key: key}, nil
		}
		var value model.Value
		if err := json.Unmarshal(payload, &value); err != nil {
			return Field{}, fmt.Errorf("field %q: %w", key, err)
		}
		return Field{Key: key, Value: value, HasValue: true}, nil
	}

	var value model.Value
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return Field{}, fmt.Errorf("field %q: %w", key, err)
	}
	return Field{Key: key, Value: value, HasValue: true}, nil
}

func malformedJSON(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "malformed JSON submission").
		WithTextCode(textCodeMalformedJSON)
}
