package usecases

import (
	"strconv"
	"strings"

	"shopify-sync/internal/domain/model"
)

// Detect compares a local snapshot against a remote one and returns the
// local-to-remote deltas for title and inventory. Pure: no I/O, identical
// inputs yield identical output.
//
// Matching is by external id. Duplicate ids in the remote snapshot are not an
// error; the first occurrence shadows the rest. Local records without an
// external id are skipped. Remote-only records produce no delta; the
// overwrite phase reconciles them implicitly.
func Detect(local, remote []model.ProductRecord) model.DeltaSet {
	remoteByID := make(map[string]model.ProductRecord, len(remote))
	for _, record := range remote {
		id := strings.TrimSpace(record.ExternalID)
		if id == "" {
			continue
		}
		if _, ok := remoteByID[id]; ok {
			continue
		}
		remoteByID[id] = record
	}

	var deltas model.DeltaSet
	for _, localRecord := range local {
		id := strings.TrimSpace(localRecord.ExternalID)
		if id == "" {
			continue
		}
		remoteRecord, ok := remoteByID[id]
		if !ok {
			continue
		}

		if localRecord.Title != remoteRecord.Title {
			deltas.TitleDeltas = append(deltas.TitleDeltas, model.Delta{
				ExternalID:  id,
				Field:       model.DeltaFieldTitle,
				LocalValue:  localRecord.Title,
				RemoteValue: remoteRecord.Title,
			})
		}
		if localRecord.InventoryQuantity != remoteRecord.InventoryQuantity {
			deltas.InventoryDeltas = append(deltas.InventoryDeltas, model.Delta{
				ExternalID:    id,
				Field:         model.DeltaFieldInventory,
				LocalValue:    strconv.Itoa(localRecord.InventoryQuantity),
				RemoteValue:   strconv.Itoa(remoteRecord.InventoryQuantity),
				LocalQuantity: localRecord.InventoryQuantity,
			})
		}
	}
	return deltas
}
