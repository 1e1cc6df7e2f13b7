package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Control fields sent by the form alongside the visitor's values.
const (
	fieldNotificationEmail = "_notificationEmail"
	fieldSubmittedFrom     = "_submittedFrom"
	fieldLabels            = "_fieldLabels"
	fieldSheetID           = "_googleSheetId"
	fieldSheetTab          = "_googleSheetTabName"
)

var (
	ErrNoData         = errors.New("contact: no data provided")
	ErrInvalidPayload = errors.New("contact: payload must be a JSON object")
)

// Field is one visitor supplied value, in submission order.
type Field struct {
	Key   string
	Label string
	Value string
}

// Submission is a parsed contact form.
type Submission struct {
	Fields        []Field
	Recipient     string
	SubmittedFrom string
	SheetID       string
	SheetTab      string
}

// ParseSubmission decodes a JSON object, keeping the key order of the
// visitor fields and moving the control fields onto the Submission.
func ParseSubmission(data []byte) (*Submission, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) || (err == nil && tok == nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrInvalidPayload
	}

	sub := &Submission{}
	labels := map[string]string{}
	index := map[string]int{}
	keys := 0
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		keys++

		switch key {
		case fieldNotificationEmail:
			sub.Recipient = strings.TrimSpace(DisplayValue(raw))
		case fieldSubmittedFrom:
			sub.SubmittedFrom = DisplayValue(raw)
		case fieldSheetID:
			sub.SheetID = strings.TrimSpace(DisplayValue(raw))
		case fieldSheetTab:
			sub.SheetTab = strings.TrimSpace(DisplayValue(raw))
		case fieldLabels:
			var decoded map[string]any
			if err := json.Unmarshal(raw, &decoded); err == nil {
				for k, v := range decoded {
					if label, ok := v.(string); ok {
						labels[k] = label
					}
				}
			}
		default:
			field := Field{Key: key, Value: DisplayValue(raw)}
			if i, seen := index[key]; seen {
				sub.Fields[i] = field
				continue
			}
			index[key] = len(sub.Fields)
			sub.Fields = append(sub.Fields, field)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if keys == 0 {
		return nil, ErrNoData
	}

	for i := range sub.Fields {
		sub.Fields[i].Label = labels[sub.Fields[i].Key]
	}
	return sub, nil
}

// DisplayValue renders a JSON value the way it reads in an email: strings
// verbatim, arrays comma separated, null as empty and everything else as
// compact JSON.
func DisplayValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = DisplayValue(item)
			}
			return strings.Join(parts, ",")
		}
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return string(trimmed)
}

// DisplayLabel returns the label the form sent for f, or its key.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}
