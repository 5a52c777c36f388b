package board

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabboard/pkg/models"
)

var testNow = func() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func testRepo() *Repository {
	return NewRepository(NewResolver(nil), testNow)
}

func testDoc() models.Document {
	return models.Document{
		Tabs: map[string]models.TabValue{
			"1":  models.Sequence("alpha", "beta"),
			"2":  models.Sequence("gamma"),
			"10": models.Sequence("omega"),
		},
		LastSaved: "1/1/2024, 9:00:00 AM",
	}
}

func TestListOrdersTabsNumerically(t *testing.T) {
	repo := testRepo()
	msgs := repo.List(testDoc(), Filter{})
	require.Len(t, msgs, 4)
	// tab 10 sorts after tab 2, not between 1 and 2
	assert.Equal(t, "tab1-msg0", msgs[0].ID)
	assert.Equal(t, "tab1-msg1", msgs[1].ID)
	assert.Equal(t, "tab2-msg0", msgs[2].ID)
	assert.Equal(t, "tab10-msg0", msgs[3].ID)
	assert.Equal(t, "Tenth Messages", msgs[3].Category)
}

func TestListCategoryFilter(t *testing.T) {
	repo := testRepo()
	msgs := repo.List(testDoc(), Filter{Category: "first messages"})
	require.Len(t, msgs, 2)
	assert.Equal(t, "alpha", msgs[0].Content)

	// unknown category is an empty list, not an error
	msgs = repo.List(testDoc(), Filter{Category: "Nope"})
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestListPagination(t *testing.T) {
	repo := testRepo()
	doc := testDoc()

	msgs := repo.List(doc, Filter{Limit: 2})
	require.Len(t, msgs, 2)
	assert.Equal(t, "tab1-msg0", msgs[0].ID)

	msgs = repo.List(doc, Filter{Limit: 2, Page: 2})
	require.Len(t, msgs, 2)
	assert.Equal(t, "tab2-msg0", msgs[0].ID)

	// past the end
	msgs = repo.List(doc, Filter{Limit: 2, Page: 5})
	assert.Empty(t, msgs)
}

func TestListSkipsLegacyTabs(t *testing.T) {
	repo := testRepo()
	doc := testDoc()
	doc.Tabs["3"] = models.LegacyScalar("old note")
	msgs := repo.List(doc, Filter{})
	for _, m := range msgs {
		assert.NotEqual(t, "3", m.TabID)
	}
}

func TestGet(t *testing.T) {
	repo := testRepo()
	msg, err := repo.Get(testDoc(), "tab1-msg1")
	require.NoError(t, err)
	assert.Equal(t, "beta", msg.Content)
	assert.Equal(t, "First Messages", msg.Category)
	assert.Equal(t, "1", msg.TabID)
}

func TestGetErrors(t *testing.T) {
	repo := testRepo()
	doc := testDoc()
	doc.Tabs["3"] = models.LegacyScalar("old note")

	_, err := repo.Get(doc, "bogus")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = repo.Get(doc, "tab1-msg99")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(doc, "tab7-msg0")
	assert.ErrorIs(t, err, ErrNotFound)

	// legacy scalar tabs hold no addressable messages
	_, err = repo.Get(doc, "tab3-msg0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAppends(t *testing.T) {
	repo := testRepo()
	doc := testDoc()
	next, msg, err := repo.Create(doc, "hi", "delta", "First Messages")
	require.NoError(t, err)

	assert.Equal(t, "tab1-msg2", msg.ID)
	assert.Equal(t, "delta", msg.Content)
	assert.Equal(t, "2024-03-15T10:30:00Z", msg.CreatedAt)
	assert.Equal(t, []string{"alpha", "beta", "delta"}, next.Tabs["1"].Messages)

	// input document untouched
	assert.Len(t, doc.Tabs["1"].Messages, 2)
}

func TestCreateDefaultsToFirstTab(t *testing.T) {
	repo := testRepo()
	for _, category := range []string{"", "Unknown Category"} {
		next, msg, err := repo.Create(testDoc(), "t", "body", category)
		require.NoError(t, err)
		assert.Equal(t, "1", msg.TabID, "category %q", category)
		assert.Len(t, next.Tabs["1"].Messages, 3)
	}
}

func TestCreateLeavesLastSavedUntouched(t *testing.T) {
	repo := testRepo()
	doc := testDoc()
	next, _, err := repo.Create(doc, "t", "body", "")
	require.NoError(t, err)
	assert.Equal(t, doc.LastSaved, next.LastSaved)
}

func TestCreateCoercesLegacyTab(t *testing.T) {
	repo := NewRepository(NewResolver([]models.Category{{ID: "5", Name: "Legacy"}}), testNow)
	doc := models.Document{Tabs: map[string]models.TabValue{
		"5": models.LegacyScalar("old note"),
	}}
	next, msg, err := repo.Create(doc, "t", "new", "Legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"old note", "new"}, next.Tabs["5"].Messages)
	assert.Equal(t, "tab5-msg1", msg.ID)
}

func TestCreateInitializesAbsentTab(t *testing.T) {
	repo := testRepo()
	doc := models.Document{Tabs: map[string]models.TabValue{}}
	next, msg, err := repo.Create(doc, "t", "body", "Fourth Messages")
	require.NoError(t, err)
	assert.Equal(t, "tab4-msg0", msg.ID)
	assert.Equal(t, []string{"body"}, next.Tabs["4"].Messages)
}

func TestDeriveTitle(t *testing.T) {
	short := "a short message"
	_, msg, err := testRepo().Create(testDoc(), "ignored", short, "")
	require.NoError(t, err)
	assert.Equal(t, short, msg.Title)

	long := strings.Repeat("x", 60)
	_, msg, err = testRepo().Create(testDoc(), "ignored", long, "")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 50)+"...", msg.Title)
	assert.Len(t, []rune(msg.Title), 53)
}

func TestUpdateContentInPlace(t *testing.T) {
	repo := testRepo()
	doc := testDoc()
	next, msg, err := repo.Update(doc, "tab1-msg0", Patch{Content: "revised"})
	require.NoError(t, err)

	assert.Equal(t, []string{"revised", "beta"}, next.Tabs["1"].Messages)
	assert.Equal(t, "revised", msg.Content)
	assert.Equal(t, "1", msg.TabID)
	assert.Equal(t, "2024-03-15T10:30:00Z", msg.UpdatedAt)
	// update refreshes lastSaved
	assert.Equal(t, "3/15/2024, 10:30:00 AM", next.LastSaved)
	// input untouched
	assert.Equal(t, "alpha", doc.Tabs["1"].Messages[0])
}

func TestUpdateEchoesGivenTitle(t *testing.T) {
	repo := testRepo()
	_, msg, err := repo.Update(testDoc(), "tab1-msg0", Patch{Title: "my title", Content: "revised"})
	require.NoError(t, err)
	// title is echoed, not re-derived from content
	assert.Equal(t, "my title", msg.Title)
}

func TestUpdateMovesBetweenTabs(t *testing.T) {
	repo := testRepo()
	next, msg, err := repo.Update(testDoc(), "tab1-msg0", Patch{Category: "Second Messages"})
	require.NoError(t, err)

	assert.Equal(t, []string{"beta"}, next.Tabs["1"].Messages)
	assert.Equal(t, []string{"gamma", "alpha"}, next.Tabs["2"].Messages)
	assert.Equal(t, "2", msg.TabID)
	assert.Equal(t, "Second Messages", msg.Category)
	// the response echoes the request id even though the move made it stale:
	// "alpha" now actually lives at tab2-msg1
	assert.Equal(t, "tab1-msg0", msg.ID)
}

func TestUpdateMoveWithContentChange(t *testing.T) {
	repo := testRepo()
	next, msg, err := repo.Update(testDoc(), "tab1-msg1", Patch{Content: "beta v2", Category: "Tenth Messages"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, next.Tabs["1"].Messages)
	assert.Equal(t, []string{"omega", "beta v2"}, next.Tabs["10"].Messages)
	assert.Equal(t, "beta v2", msg.Content)
}

func TestUpdateSameCategoryIsNoMove(t *testing.T) {
	repo := testRepo()
	next, msg, err := repo.Update(testDoc(), "tab1-msg0", Patch{Content: "revised", Category: "First Messages"})
	require.NoError(t, err)
	assert.Equal(t, []string{"revised", "beta"}, next.Tabs["1"].Messages)
	assert.Equal(t, "1", msg.TabID)
}

func TestUpdateUnknownCategoryKeepsTab(t *testing.T) {
	repo := testRepo()
	next, msg, err := repo.Update(testDoc(), "tab1-msg0", Patch{Content: "revised", Category: "No Such Tab"})
	require.NoError(t, err)
	assert.Equal(t, "1", msg.TabID)
	assert.Len(t, next.Tabs["1"].Messages, 2)
}

func TestUpdateNotFound(t *testing.T) {
	repo := testRepo()
	_, _, err := repo.Update(testDoc(), "tab1-msg9", Patch{Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := testRepo()
	next, receipt, err := repo.Delete(testDoc(), "tab1-msg0")
	require.NoError(t, err)

	assert.Equal(t, []string{"beta"}, next.Tabs["1"].Messages)
	assert.Equal(t, "tab1-msg0", receipt.MessageID)
	assert.Equal(t, "1", receipt.TabID)
	assert.Equal(t, "First Messages", receipt.Category)
	assert.Equal(t, "2024-03-15T10:30:00Z", receipt.DeletedAt)
	assert.Equal(t, "3/15/2024, 10:30:00 AM", next.LastSaved)
}

func TestDeleteShiftsIndices(t *testing.T) {
	repo := testRepo()
	doc := testDoc()

	next, _, err := repo.Delete(doc, "tab1-msg0")
	require.NoError(t, err)

	// the old id for "beta" now addresses nothing past the end; its content
	// moved down to index 0. Stale ids silently hit the wrong message.
	msg, err := repo.Get(next, "tab1-msg0")
	require.NoError(t, err)
	assert.Equal(t, "beta", msg.Content)

	_, err = repo.Get(next, "tab1-msg1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteErrors(t *testing.T) {
	repo := testRepo()
	_, _, err := repo.Delete(testDoc(), "tab0-msg0")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, _, err = repo.Delete(testDoc(), "tab9-msg0")
	assert.ErrorIs(t, err, ErrNotFound)
}
