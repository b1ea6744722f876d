package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-sync/internal/domain/model"
)

func record(externalID, title string, inventory int) model.ProductRecord {
	return model.ProductRecord{
		MerchantKey:       "merchant-1",
		ExternalID:        externalID,
		Title:             title,
		InventoryQuantity: inventory,
	}
}

func TestDetectNoDeltaWhenEqual(t *testing.T) {
	local := []model.ProductRecord{record("1", "Vintage Tee", 5)}
	remote := []model.ProductRecord{record("1", "Vintage Tee", 5)}

	deltas := Detect(local, remote)
	assert.True(t, deltas.Empty())
}

func TestDetectTitleDelta(t *testing.T) {
	local := []model.ProductRecord{record("1", "Old", 5)}
	remote := []model.ProductRecord{record("1", "New", 5)}

	deltas := Detect(local, remote)
	require.Len(t, deltas.TitleDeltas, 1)
	assert.Empty(t, deltas.InventoryDeltas)

	delta := deltas.TitleDeltas[0]
	assert.Equal(t, "1", delta.ExternalID)
	assert.Equal(t, model.DeltaFieldTitle, delta.Field)
	assert.Equal(t, "Old", delta.LocalValue)
	assert.Equal(t, "New", delta.RemoteValue)
}

func TestDetectInventoryDeltaCarriesBothValues(t *testing.T) {
	local := []model.ProductRecord{record("7", "Jacket", 3)}
	remote := []model.ProductRecord{record("7", "Jacket", 0)}

	deltas := Detect(local, remote)
	require.Len(t, deltas.InventoryDeltas, 1)
	assert.Empty(t, deltas.TitleDeltas)

	delta := deltas.InventoryDeltas[0]
	assert.Equal(t, "7", delta.ExternalID)
	assert.Equal(t, "3", delta.LocalValue)
	assert.Equal(t, "0", delta.RemoteValue)
	assert.Equal(t, 3, delta.LocalQuantity)
}

func TestDetectBothFieldsDiverge(t *testing.T) {
	local := []model.ProductRecord{record("1", "Old", 2)}
	remote := []model.ProductRecord{record("1", "New", 9)}

	deltas := Detect(local, remote)
	assert.Len(t, deltas.TitleDeltas, 1)
	assert.Len(t, deltas.InventoryDeltas, 1)
}

func TestDetectSkipsLocalWithoutExternalID(t *testing.T) {
	local := []model.ProductRecord{record("", "Orphan", 2), record("  ", "Orphan 2", 4)}
	remote := []model.ProductRecord{record("1", "New", 9)}

	deltas := Detect(local, remote)
	assert.True(t, deltas.Empty())
}

func TestDetectRemoteOnlyProducesNoDelta(t *testing.T) {
	remote := []model.ProductRecord{record("2", "Brand New", 0)}

	deltas := Detect(nil, remote)
	assert.True(t, deltas.Empty())
}

func TestDetectEmptyRemoteProducesNoDelta(t *testing.T) {
	local := []model.ProductRecord{record("1", "Kept", 5)}

	deltas := Detect(local, nil)
	assert.True(t, deltas.Empty())
}

func TestDetectDuplicateRemoteFirstMatchWins(t *testing.T) {
	local := []model.ProductRecord{record("1", "Local", 5)}
	remote := []model.ProductRecord{
		record("1", "First", 5),
		record("1", "Shadowed", 5),
	}

	deltas := Detect(local, remote)
	require.Len(t, deltas.TitleDeltas, 1)
	assert.Equal(t, "First", deltas.TitleDeltas[0].RemoteValue)
	assert.Empty(t, deltas.InventoryDeltas)
}

func TestDetectExactlyOneDeltaPerDivergingPair(t *testing.T) {
	local := []model.ProductRecord{
		record("1", "A", 1),
		record("2", "B", 2),
		record("3", "C", 3),
	}
	remote := []model.ProductRecord{
		record("1", "A", 10),
		record("2", "B", 2),
		record("3", "C", 30),
	}

	deltas := Detect(local, remote)
	assert.Empty(t, deltas.TitleDeltas)
	require.Len(t, deltas.InventoryDeltas, 2)

	seen := map[string]int{}
	for _, delta := range deltas.InventoryDeltas {
		seen[delta.ExternalID]++
	}
	assert.Equal(t, map[string]int{"1": 1, "3": 1}, seen)
}

func TestDetectIsPure(t *testing.T) {
	local := []model.ProductRecord{record("1", "Old", 2), record("2", "Same", 4)}
	remote := []model.ProductRecord{record("1", "New", 3), record("2", "Same", 4)}

	first := Detect(local, remote)
	second := Detect(local, remote)
	assert.Equal(t, first, second)
}
