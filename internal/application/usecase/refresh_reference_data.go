package usecase

import (
	"context"
	"fmt"

	"github.com/sergiomillane/motor-decisiones/internal/application/dto"
	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
)

// RefreshReferenceData reloads the collaborator tables on demand.
type RefreshReferenceData struct {
	provider port.ReferenceDataProvider
}

// NewRefreshReferenceData creates a new RefreshReferenceData use case.
func NewRefreshReferenceData(provider port.ReferenceDataProvider) *RefreshReferenceData {
	return &RefreshReferenceData{provider: provider}
}

// Execute refreshes the provider and reports the new table sizes.
func (uc *RefreshReferenceData) Execute(ctx context.Context) (dto.RefreshReferenceDataResponse, error) {
	if err := uc.provider.Refresh(ctx); err != nil {
		return dto.RefreshReferenceDataResponse{}, fmt.Errorf("failed to refresh reference data: %w", err)
	}

	snapshot, err := uc.provider.Snapshot(ctx)
	if err != nil {
		return dto.RefreshReferenceDataResponse{}, fmt.Errorf("failed to read refreshed snapshot: %w", err)
	}

	return dto.FromStats(snapshot.Stats()), nil
}
