package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// LastSavedLayout is the locale-style stamp the persisted document carries
// in its lastSaved field.
const LastSavedLayout = "1/2/2006, 3:04:05 PM"

// TabValue holds the contents of a single tab. A well-formed tab is an
// ordered sequence of message bodies, but documents written by older
// clients may carry a bare scalar instead; that legacy shape is kept as-is
// until the first write coerces it into a one-element sequence.
type TabValue struct {
	Messages []string
	Scalar   string
	Legacy   bool
}

// Sequence returns a TabValue holding the given message bodies.
func Sequence(msgs ...string) TabValue {
	return TabValue{Messages: msgs}
}

// LegacyScalar returns a TabValue holding a single legacy scalar.
func LegacyScalar(s string) TabValue {
	return TabValue{Scalar: s, Legacy: true}
}

// IsSequence reports whether the tab holds a proper message sequence.
func (t TabValue) IsSequence() bool { return !t.Legacy }

// Len returns the number of addressable messages in the tab. Legacy scalars
// are not addressable until coerced.
func (t TabValue) Len() int {
	if t.Legacy {
		return 0
	}
	return len(t.Messages)
}

// Coerced returns the tab as a sequence, wrapping a legacy scalar into a
// single-element sequence. The receiver is not modified.
func (t TabValue) Coerced() TabValue {
	if !t.Legacy {
		return TabValue{Messages: append([]string(nil), t.Messages...)}
	}
	return TabValue{Messages: []string{t.Scalar}}
}

func (t TabValue) MarshalJSON() ([]byte, error) {
	if t.Legacy {
		return json.Marshal(t.Scalar)
	}
	if t.Messages == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Messages)
}

func (t *TabValue) UnmarshalJSON(b []byte) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(b, &arr); err == nil {
		msgs := make([]string, 0, len(arr))
		for _, raw := range arr {
			msgs = append(msgs, stringifyRaw(raw))
		}
		*t = TabValue{Messages: msgs}
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = TabValue{Scalar: stringifyRaw(raw), Legacy: true}
	return nil
}

// stringifyRaw renders a raw JSON value as a message body string. Strings
// are unwrapped; anything else keeps its compact JSON form.
func stringifyRaw(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Document is the full persisted board state: every tab's contents plus the
// lastSaved stamp. The wire shape is flat, `{"<tabKey>": [...], "lastSaved": "..."}`.
type Document struct {
	Tabs      map[string]TabValue
	LastSaved string
}

// NewDocument returns a well-formed empty document with the given tab keys
// pre-initialized as empty sequences.
func NewDocument(tabKeys []string, lastSaved string) Document {
	tabs := make(map[string]TabValue, len(tabKeys))
	for _, k := range tabKeys {
		tabs[k] = Sequence()
	}
	return Document{Tabs: tabs, LastSaved: lastSaved}
}

// Clone returns a deep copy of the document. Repository transforms operate
// on copies so a failed save never leaves a half-mutated document behind.
func (d Document) Clone() Document {
	out := Document{Tabs: make(map[string]TabValue, len(d.Tabs)), LastSaved: d.LastSaved}
	for k, v := range d.Tabs {
		if v.Legacy {
			out.Tabs[k] = v
			continue
		}
		out.Tabs[k] = TabValue{Messages: append([]string(nil), v.Messages...)}
	}
	return out
}

// SortedTabKeys returns the document's tab keys in ascending numeric order.
// Non-numeric keys (which the codec cannot address but the document may
// still carry) sort after numeric ones, lexicographically.
func (d Document) SortedTabKeys() []string {
	keys := make([]string, 0, len(d.Tabs))
	for k := range d.Tabs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, ei := strconv.Atoi(keys[i])
		nj, ej := strconv.Atoi(keys[j])
		switch {
		case ei == nil && ej == nil:
			return ni < nj
		case ei == nil:
			return true
		case ej == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Tabs)+1)
	for k, v := range d.Tabs {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal tab %q: %w", k, err)
		}
		out[k] = b
	}
	ls, err := json.Marshal(d.LastSaved)
	if err != nil {
		return nil, err
	}
	out["lastSaved"] = ls
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	doc := Document{Tabs: make(map[string]TabValue, len(raw))}
	for k, v := range raw {
		if k == "lastSaved" {
			doc.LastSaved = stringifyRaw(v)
			continue
		}
		var tv TabValue
		if err := json.Unmarshal(v, &tv); err != nil {
			return fmt.Errorf("unmarshal tab %q: %w", k, err)
		}
		doc.Tabs[k] = tv
	}
	*d = doc
	return nil
}
