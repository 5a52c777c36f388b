package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabboard/pkg/models"
)

func TestPebbleGatewayRoundTrip(t *testing.T) {
	gw, err := OpenPebbleGateway(t.TempDir(), []string{"1", "2"})
	require.NoError(t, err)
	defer gw.Close()
	ctx := context.Background()

	// empty DB serves the default document
	doc, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Tabs, 2)

	doc.Tabs["1"] = models.Sequence("hello")
	doc.LastSaved = "stamp"
	require.NoError(t, gw.Save(ctx, doc))

	got, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, got.Tabs["1"].Messages)
	assert.Equal(t, "stamp", got.LastSaved)
}

func TestPebbleGatewaySnapshotLeavesDocument(t *testing.T) {
	gw, err := OpenPebbleGateway(t.TempDir(), nil)
	require.NoError(t, err)
	defer gw.Close()
	ctx := context.Background()

	live := models.NewDocument([]string{"1"}, "live")
	require.NoError(t, gw.Save(ctx, live))

	snap := models.NewDocument([]string{"1"}, "snapshot")
	require.NoError(t, gw.SaveSnapshot("20240315T103000Z", snap))

	got, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "live", got.LastSaved)
}

func TestPebbleGatewayCloseTwice(t *testing.T) {
	gw, err := OpenPebbleGateway(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	assert.NoError(t, gw.Close())
}
