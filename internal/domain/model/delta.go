package model

import (
	"fmt"
	"time"
)

type DeltaField string

const (
	DeltaFieldTitle     DeltaField = "title"
	DeltaFieldInventory DeltaField = "inventory"
)

// Delta is one detected divergence, always pushed local to remote.
// LocalQuantity carries the push target for inventory deltas.
type Delta struct {
	ExternalID    string
	Field         DeltaField
	LocalValue    string
	RemoteValue   string
	LocalQuantity int
}

type DeltaSet struct {
	TitleDeltas     []Delta
	InventoryDeltas []Delta
}

func (d DeltaSet) Empty() bool {
	return len(d.TitleDeltas) == 0 && len(d.InventoryDeltas) == 0
}

type SyncReport struct {
	RunID       string
	MerchantKey string
	StartedAt   time.Time
	FinishedAt  time.Time

	RecordsInserted       int
	RecordsUpdated        int
	RecordsFailed         int
	TitleDeltasPushed     int
	InventoryDeltasPushed int
	PushErrors            int
}

func (r *SyncReport) Summary() string {
	return fmt.Sprintf(
		"reconcile merchant=%s inserted=%d updated=%d failed=%d title_pushed=%d inventory_pushed=%d push_errors=%d took=%s",
		r.MerchantKey,
		r.RecordsInserted,
		r.RecordsUpdated,
		r.RecordsFailed,
		r.TitleDeltasPushed,
		r.InventoryDeltasPushed,
		r.PushErrors,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
	)
}
