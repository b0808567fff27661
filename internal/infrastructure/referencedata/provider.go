package referencedata

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sergiomillane/motor-decisiones/internal/domain/model"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// Sources groups the loaders of the four reference tables. Only History is
// required; missing loaders produce empty tables.
type Sources struct {
	History      HistoryLoader
	Installments InstallmentLoader
	Collections  CollectionsLoader
	Behavior     BehaviorLoader
}

// Provider implements port.ReferenceDataProvider over a set of loaders and
// an optional snapshot cache.
type Provider struct {
	sources Sources
	cache   SnapshotCache
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current *model.ReferenceSnapshot
}

var _ port.ReferenceDataProvider = (*Provider)(nil)

// NewProvider creates a Provider. cache may be nil.
func NewProvider(sources Sources, cache SnapshotCache, logger *slog.Logger) *Provider {
	return &Provider{
		sources: sources,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// Initialize publishes the cached snapshot when one exists, else loads from
// the sources.
func (p *Provider) Initialize(ctx context.Context) error {
	if p.cache != nil {
		cached, err := p.cache.Get(ctx)
		if err != nil {
			p.logger.WarnContext(ctx, "reference snapshot cache unavailable", slog.String("error", err.Error()))
		}
		if cached != nil {
			p.publish(cached)
			p.logger.InfoContext(ctx, "reference snapshot loaded from cache",
				slog.Int("history_rows", len(cached.History)),
				slog.Time("loaded_at", cached.LoadedAt),
			)
			return nil
		}
	}
	return p.Refresh(ctx)
}

// Refresh reloads every table from its source and rewrites the cache.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.sources.History == nil {
		return fmt.Errorf("referencedata: history loader is required")
	}

	history, err := p.sources.History.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("referencedata: load history: %w", err)
	}

	var installments []InstallmentRow
	if p.sources.Installments != nil {
		if installments, err = p.sources.Installments.LoadInstallments(ctx); err != nil {
			return fmt.Errorf("referencedata: load installments: %w", err)
		}
	}

	var collections []CollectionsRow
	if p.sources.Collections != nil {
		if collections, err = p.sources.Collections.LoadCollections(ctx); err != nil {
			return fmt.Errorf("referencedata: load collections: %w", err)
		}
	}

	var behavior []BehaviorRow
	if p.sources.Behavior != nil {
		if behavior, err = p.sources.Behavior.LoadBehavior(ctx); err != nil {
			return fmt.Errorf("referencedata: load behavior: %w", err)
		}
	}

	snapshot := BuildSnapshot(history, installments, collections, behavior, p.now().UTC())
	p.publish(snapshot)

	p.logger.InfoContext(ctx, "reference snapshot refreshed",
		slog.Int("history_rows", len(snapshot.History)),
		slog.Int("installments", len(snapshot.Installments)),
		slog.Int("collections", len(snapshot.Collections)),
		slog.Int("late_behavior", len(snapshot.LateBehavior)),
	)

	if p.cache != nil {
		if err := p.cache.Put(ctx, snapshot); err != nil {
			p.logger.WarnContext(ctx, "failed to cache reference snapshot", slog.String("error", err.Error()))
		}
	}
	return nil
}

// Snapshot returns the current snapshot.
func (p *Provider) Snapshot(_ context.Context) (*model.ReferenceSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil, port.ErrReferenceDataNotReady
	}
	return p.current, nil
}

// Ready reports whether a snapshot has been published.
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current != nil
}

func (p *Provider) publish(s *model.ReferenceSnapshot) {
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
}

// BuildSnapshot coerces identifiers and keys the reference tables by client.
// Installments are summed per client; collections and behavior keep the
// first row per client. Rows whose identifier fails coercion are kept in the
// history but never keyed.
func BuildSnapshot(
	history []HistoryRow,
	installments []InstallmentRow,
	collections []CollectionsRow,
	behavior []BehaviorRow,
	loadedAt time.Time,
) *model.ReferenceSnapshot {
	records := make([]model.CreditRecord, 0, len(history))
	for _, h := range history {
		records = append(records, model.CreditRecord{
			ClientID:   valueobject.ParseClientID(h.ClientID),
			Folio:      h.Folio,
			AssignedAt: h.AssignedAt,
			Result:     h.Result,
			Source:     h.Source,
		})
	}

	installmentByClient := make(map[int64]decimal.Decimal)
	for _, r := range installments {
		id := valueobject.ParseClientID(r.ClientID)
		if id.IsNull() {
			continue
		}
		installmentByClient[id.Int64()] = installmentByClient[id.Int64()].Add(r.Amount)
	}

	collectionsByClient := make(map[int64]string)
	for _, r := range collections {
		id := valueobject.ParseClientID(r.ClientID)
		if id.IsNull() {
			continue
		}
		if _, seen := collectionsByClient[id.Int64()]; !seen {
			collectionsByClient[id.Int64()] = r.Status
		}
	}

	behaviorByClient := make(map[int64]bool)
	for _, r := range behavior {
		id := valueobject.ParseClientID(r.ClientID)
		if id.IsNull() {
			continue
		}
		if _, seen := behaviorByClient[id.Int64()]; !seen {
			behaviorByClient[id.Int64()] = r.Late
		}
	}

	return model.NewReferenceSnapshot(records, installmentByClient, collectionsByClient, behaviorByClient, loadedAt)
}
