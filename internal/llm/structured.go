package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFenceRe  = regexp.MustCompile("```json\\s*")
	plainFenceRe = regexp.MustCompile("```\\s*")
	langFenceRe  = regexp.MustCompile("```[A-Za-z]*\\s*")
)

// Record is one untrusted element of an extracted array. Field presence
// and types are never assumed; use the accessors.
type Record struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// Raw returns the element's JSON text.
func (r Record) Raw() json.RawMessage { return r.raw }

// IsObject reports whether the element was a JSON object.
func (r Record) IsObject() bool { return r.fields != nil }

// Has reports whether key is present, whatever its type.
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Present reports whether key is present with a non-null value.
func (r Record) Present(key string) bool {
	v, ok := r.fields[key]
	return ok && string(v) != "null"
}

// String returns the field as a string. ok is false when the field is
// absent, null or not a JSON string.
func (r Record) String(key string) (string, bool) {
	v, ok := r.fields[key]
	if !ok || string(v) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decode unmarshals the whole element into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal(r.raw, v)
}

// ExtractOption adjusts ExtractRecords.
type ExtractOption func(*extractOptions)

type extractOptions struct {
	repair bool
}

// WithRepair removes JS-style comments and fixes ".5"-style numbers before
// parsing. Schedule extraction stays strict; tutoring content uses this.
func WithRepair() ExtractOption {
	return func(o *extractOptions) { o.repair = true }
}

// ExtractRecords recovers an array of records from free-form model text.
//
// Code fence markers are dropped wherever they appear, the text is trimmed,
// and the span from the first '[' to the last ']' is kept when present. The
// result must parse as JSON. An array is used as is; for an object the first
// array-valued member in document order is used. An empty result is an error.
func ExtractRecords(raw string, opts ...ExtractOption) ([]Record, error) {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}

	text := IsolateArray(raw)
	if o.repair {
		text = normalizeLeadingDecimalNumbers(stripJSONComments(text))
	}

	data := []byte(text)
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	var elems []json.RawMessage
	switch firstByte(data) {
	case '[':
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	case '{':
		arr, err := firstArrayMember(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		if arr != nil {
			if err := json.Unmarshal(arr, &elems); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
			}
		}
	}

	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: no entries in response", ErrEmptyOutput)
	}

	records := make([]Record, 0, len(elems))
	for _, e := range elems {
		rec := Record{raw: e}
		if firstByte(e) == '{' {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(e, &fields); err == nil && fields != nil {
				rec.fields = fields
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// IsolateArray applies the textual clean-up steps of ExtractRecords without
// parsing: fence markers removed, trimmed, narrowed to the outermost [...] span.
func IsolateArray(raw string) string {
	text := jsonFenceRe.ReplaceAllString(raw, "")
	text = plainFenceRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return text
}

// StripCodeFences removes fence markers and surrounding whitespace from
// prose responses.
func StripCodeFences(raw string) string {
	return strings.TrimSpace(langFenceRe.ReplaceAllString(raw, ""))
}

// firstArrayMember walks an object's members in document order and returns
// the first value that is an array, or nil when there is none.
func firstArrayMember(data []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if firstByte(v) == '[' {
			return v, nil
		}
	}
	return nil, nil
}

func firstByte(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

// SchemaValidator validates a decoded element.
type SchemaValidator[T any] func(T) error

// RequireFields keeps the records that carry every key with a non-null
// value. Decoding into a struct would otherwise zero-fill a missing field.
func RequireFields(records []Record, keys ...string) ([]Record, []error) {
	var out []Record
	var rejected []error
	for i, rec := range records {
		missing := ""
		for _, k := range keys {
			if !rec.Present(k) {
				missing = k
				break
			}
		}
		if missing != "" {
			rejected = append(rejected, fmt.Errorf("record %d: %w: missing %s", i, ErrInvalidOutput, missing))
			continue
		}
		out = append(out, rec)
	}
	return out, rejected
}

// DecodeRecords decodes each record into T and keeps those that decode and
// pass validator. Rejections are returned alongside, one error per dropped record.
func DecodeRecords[T any](records []Record, validator SchemaValidator[T]) ([]T, []error) {
	var out []T
	var rejected []error
	for i, rec := range records {
		var v T
		if err := rec.Decode(&v); err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w: %v", i, ErrInvalidOutput, err))
			continue
		}
		if validator != nil {
			if err := validator(v); err != nil {
				rejected = append(rejected, fmt.Errorf("record %d: %w: %v", i, ErrInvalidOutput, err))
				continue
			}
		}
		out = append(out, v)
	}
	return out, rejected
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) {
				if s[i] == '*' && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}

		b.WriteByte(c)
	}
	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" outside strings
// into "0.8" and "-0.3".
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
