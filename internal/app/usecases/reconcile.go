package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"shopify-sync/internal/adapters/catalogsink"
	"shopify-sync/internal/adapters/shopify"
	"shopify-sync/internal/classify"
	"shopify-sync/internal/domain/model"
	"shopify-sync/internal/logging"
	"shopify-sync/internal/metrics"
	"shopify-sync/internal/store"
)

type ReconcileService interface {
	Run(ctx context.Context, merchantKey string) (*model.SyncReport, error)
}

type Reconciler struct {
	store      store.ProductsService
	snapshots  shopify.SnapshotService
	titles     shopify.TitleService
	stocks     shopify.StockService
	classifier classify.Service
	sink       catalogsink.SinkService
	logger     logging.LoggerService

	locks       *merchantLocks
	pushLimiter *rate.Limiter
	pushTimeout time.Duration
}

const defaultPushTimeout = 15 * time.Second

// NewReconcile wires the reconciliation engine. sink may be nil; forwarding is
// then skipped. pushDelay throttles successive remote writes.
func NewReconcile(
	productsStore store.ProductsService,
	snapshots shopify.SnapshotService,
	titles shopify.TitleService,
	stocks shopify.StockService,
	classifier classify.Service,
	sink catalogsink.SinkService,
	logger logging.LoggerService,
	pushDelay time.Duration,
) ReconcileService {
	if pushDelay <= 0 {
		pushDelay = 50 * time.Millisecond
	}
	return &Reconciler{
		store:       productsStore,
		snapshots:   snapshots,
		titles:      titles,
		stocks:      stocks,
		classifier:  classifier,
		sink:        sink,
		logger:      logger,
		locks:       newMerchantLocks(),
		pushLimiter: rate.NewLimiter(rate.Every(pushDelay), 1),
		pushTimeout: defaultPushTimeout,
	}
}

// Run executes one reconciliation for the merchant: fetch both snapshots,
// detect deltas, push local edits to the remote catalog, then overwrite local
// state from the remote snapshot. Remote state wins on convergence; per-record
// failures are counted in the report and never abort the run. Only an
// unreachable store or an unreachable remote fails the run as a whole.
func (r *Reconciler) Run(ctx context.Context, merchantKey string) (*model.SyncReport, error) {
	merchantKey = strings.TrimSpace(merchantKey)
	if merchantKey == "" {
		return nil, fmt.Errorf("merchant key is required")
	}

	release, err := r.locks.tryAcquire(merchantKey)
	if err != nil {
		return nil, err
	}
	defer release()

	report := &model.SyncReport{
		RunID:       uuid.NewString(),
		MerchantKey: merchantKey,
		StartedAt:   time.Now(),
	}
	if r.logger != nil {
		r.logger.Log(fmt.Sprintf("reconcile started merchant=%s run=%s", merchantKey, report.RunID))
	}

	// Phase 1: local snapshot. The store connection is released before any
	// network call happens.
	local, err := r.store.GetAll(ctx, merchantKey)
	if err != nil {
		metrics.RecordRun("store_error")
		return nil, fmt.Errorf("local snapshot: %w", err)
	}

	// Phase 2: remote snapshot, classified before comparison.
	rawRemote, err := r.snapshots.FetchProducts(ctx)
	if err != nil {
		metrics.RecordRun("fetch_error")
		if r.logger != nil {
			r.logger.LogError("reconcile aborted: remote snapshot fetch failed", err)
		}
		return nil, fmt.Errorf("remote snapshot: %w", err)
	}
	remote := r.normalizeRemote(merchantKey, rawRemote)

	// Phase 3: detection.
	deltas := Detect(local, remote)
	if r.logger != nil {
		r.logger.Log(fmt.Sprintf(
			"reconcile detected merchant=%s local=%d remote=%d title_deltas=%d inventory_deltas=%d",
			merchantKey, len(local), len(remote), len(deltas.TitleDeltas), len(deltas.InventoryDeltas),
		))
	}

	// Phase 4: push local edits to remote before they get overwritten below.
	if err := r.pushDeltas(ctx, deltas, report); err != nil {
		metrics.RecordRun("interrupted")
		return report, err
	}

	if report.PushErrors > 0 && r.logger != nil {
		r.logger.LogWarning(fmt.Sprintf(
			"reconcile overwriting local state with push_errors=%d, pending local edits may be discarded merchant=%s",
			report.PushErrors, merchantKey,
		))
	}

	// Phase 5: unconditional overwrite from the pre-push remote snapshot.
	// Remote absence never deletes local rows.
	for _, record := range remote {
		inserted, err := r.store.Upsert(ctx, merchantKey, record)
		if err != nil {
			report.RecordsFailed++
			if r.logger != nil {
				r.logger.LogError(fmt.Sprintf("reconcile upsert failed external_id=%s", record.ExternalID), err)
			}
			continue
		}
		if inserted {
			report.RecordsInserted++
		} else {
			report.RecordsUpdated++
		}
	}

	r.forwardToSink(ctx, merchantKey, remote)

	report.FinishedAt = time.Now()
	metrics.RecordRun("ok")
	metrics.AddDeltasPushed(string(model.DeltaFieldTitle), report.TitleDeltasPushed)
	metrics.AddDeltasPushed(string(model.DeltaFieldInventory), report.InventoryDeltasPushed)
	metrics.AddPushErrors(report.PushErrors)
	metrics.AddRecordsUpserted("inserted", report.RecordsInserted)
	metrics.AddRecordsUpserted("updated", report.RecordsUpdated)
	if r.logger != nil {
		r.logger.LogSuccess(report.Summary())
	}
	return report, nil
}

// normalizeRemote classifies every fetched item into a local record shape.
// Items without a usable external id are logged and dropped. Duplicate ids
// keep the first occurrence only, so detection and the overwrite loop work
// from the same record.
func (r *Reconciler) normalizeRemote(merchantKey string, raw []model.RemoteProduct) []model.ProductRecord {
	records := make([]model.ProductRecord, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	skipped := 0
	for _, product := range raw {
		externalID := model.NormalizeExternalID(product.RawID)
		if externalID == "" {
			skipped++
			continue
		}
		if seen[externalID] {
			continue
		}
		seen[externalID] = true
		fields := r.classifier.Classify(product)
		records = append(records, model.ProductRecord{
			MerchantKey:       merchantKey,
			ExternalID:        externalID,
			Title:             product.Title,
			Description:       product.Description,
			ImageURL:          fields.ImageURL,
			Condition:         fields.Condition,
			Brand:             fields.Brand,
			Size:              fields.Size,
			Price:             fields.Price,
			InventoryQuantity: fields.Inventory,
		})
	}
	if skipped > 0 && r.logger != nil {
		r.logger.LogWarning(fmt.Sprintf("reconcile skipped remote items without external id merchant=%s skipped=%d", merchantKey, skipped))
	}
	return records
}

// pushDeltas issues the remote writes sequentially with a courtesy delay
// between calls. Each call carries its own timeout and zero retries; a failed
// push is counted and the loop moves on. Only context cancellation aborts.
func (r *Reconciler) pushDeltas(ctx context.Context, deltas model.DeltaSet, report *model.SyncReport) error {
	for _, delta := range deltas.TitleDeltas {
		if err := r.pushLimiter.Wait(ctx); err != nil {
			return err
		}
		if err := r.pushTitle(ctx, delta); err != nil {
			report.PushErrors++
			if r.logger != nil {
				r.logger.LogError(fmt.Sprintf("title push failed external_id=%s", delta.ExternalID), err)
			}
			continue
		}
		report.TitleDeltasPushed++
	}

	for _, delta := range deltas.InventoryDeltas {
		if err := r.pushLimiter.Wait(ctx); err != nil {
			return err
		}
		if err := r.pushInventory(ctx, delta); err != nil {
			report.PushErrors++
			if r.logger != nil {
				r.logger.LogError(fmt.Sprintf("inventory push failed external_id=%s", delta.ExternalID), err)
			}
			continue
		}
		report.InventoryDeltasPushed++
	}
	return nil
}

func (r *Reconciler) pushTitle(ctx context.Context, delta model.Delta) error {
	pushCtx, cancel := context.WithTimeout(ctx, r.pushTimeout)
	defer cancel()
	return r.titles.UpdateTitle(pushCtx, delta.ExternalID, delta.LocalValue)
}

// pushInventory resolves the product's variants first, then issues one bulk
// set-quantity call with every variant set to the same target.
func (r *Reconciler) pushInventory(ctx context.Context, delta model.Delta) error {
	pushCtx, cancel := context.WithTimeout(ctx, r.pushTimeout)
	defer cancel()

	variants, err := r.stocks.QueryVariants(pushCtx, delta.ExternalID)
	if err != nil {
		return err
	}
	if len(variants) == 0 {
		return fmt.Errorf("no variants found external_id=%s", delta.ExternalID)
	}

	sets := make([]shopify.InventorySet, 0, len(variants))
	for _, variant := range variants {
		sets = append(sets, shopify.InventorySet{
			InventoryItemID: variant.InventoryItemID,
			Quantity:        delta.LocalQuantity,
		})
	}
	return r.stocks.SetInventoryQuantities(pushCtx, sets)
}

func (r *Reconciler) forwardToSink(ctx context.Context, merchantKey string, records []model.ProductRecord) {
	if r.sink == nil || len(records) == 0 {
		return
	}
	if err := r.sink.ForwardProducts(ctx, merchantKey, records); err != nil {
		if r.logger != nil {
			r.logger.LogWarning(fmt.Sprintf("catalog sink forward failed merchant=%s: %v", merchantKey, err))
		}
	}
}
