package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabValueMarshal(t *testing.T) {
	b, err := json.Marshal(Sequence("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(b))

	// empty sequences serialize as [], not null
	b, err = json.Marshal(Sequence())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	// legacy scalars keep their scalar shape
	b, err = json.Marshal(LegacyScalar("old"))
	require.NoError(t, err)
	assert.Equal(t, `"old"`, string(b))
}

func TestTabValueUnmarshal(t *testing.T) {
	var tv TabValue
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &tv))
	assert.True(t, tv.IsSequence())
	assert.Equal(t, []string{"a", "b"}, tv.Messages)

	require.NoError(t, json.Unmarshal([]byte(`"just a note"`), &tv))
	assert.False(t, tv.IsSequence())
	assert.Equal(t, "just a note", tv.Scalar)

	// non-string array elements are stringified to their compact JSON form
	require.NoError(t, json.Unmarshal([]byte(`[1, {"x":2}]`), &tv))
	assert.Equal(t, []string{"1", `{"x":2}`}, tv.Messages)
}

func TestTabValueCoerced(t *testing.T) {
	tv := LegacyScalar("note")
	assert.Equal(t, 0, tv.Len())
	c := tv.Coerced()
	assert.Equal(t, []string{"note"}, c.Messages)
	assert.Equal(t, 1, c.Len())

	// coercing a sequence copies the slice
	seq := Sequence("a")
	c = seq.Coerced()
	c.Messages = append(c.Messages, "b")
	assert.Len(t, seq.Messages, 1)
}

func TestDocumentWireShape(t *testing.T) {
	doc := Document{
		Tabs: map[string]TabValue{
			"1": Sequence("hello"),
			"2": Sequence(),
		},
		LastSaved: "3/15/2024, 10:30:00 AM",
	}
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	// the wire shape is flat: tabs and lastSaved share one object
	assert.JSONEq(t, `{"1":["hello"],"2":[],"lastSaved":"3/15/2024, 10:30:00 AM"}`, string(b))

	var back Document
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "3/15/2024, 10:30:00 AM", back.LastSaved)
	assert.Equal(t, []string{"hello"}, back.Tabs["1"].Messages)
	assert.Len(t, back.Tabs, 2)
}

func TestDocumentUnmarshalMixedShapes(t *testing.T) {
	raw := `{"1":["a"],"2":"legacy note","lastSaved":"stamp"}`
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.True(t, doc.Tabs["1"].IsSequence())
	assert.False(t, doc.Tabs["2"].IsSequence())
	assert.Equal(t, "legacy note", doc.Tabs["2"].Scalar)
	assert.Equal(t, "stamp", doc.LastSaved)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument([]string{"1", "2"}, "stamp")
	assert.Equal(t, "stamp", doc.LastSaved)
	require.Len(t, doc.Tabs, 2)
	assert.Equal(t, 0, doc.Tabs["1"].Len())

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":[],"2":[],"lastSaved":"stamp"}`, string(b))
}

func TestDocumentClone(t *testing.T) {
	doc := Document{Tabs: map[string]TabValue{"1": Sequence("a")}, LastSaved: "s"}
	cp := doc.Clone()
	cp.Tabs["1"].Messages[0] = "changed"
	cp.Tabs["2"] = Sequence("new")
	assert.Equal(t, "a", doc.Tabs["1"].Messages[0])
	assert.Len(t, doc.Tabs, 1)
}

func TestSortedTabKeys(t *testing.T) {
	doc := Document{Tabs: map[string]TabValue{
		"10":    Sequence(),
		"2":     Sequence(),
		"1":     Sequence(),
		"extra": Sequence(),
	}}
	assert.Equal(t, []string{"1", "2", "10", "extra"}, doc.SortedTabKeys())
}
