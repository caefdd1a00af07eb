package usecase

import (
	"context"

	"ledger-reconciler/internal/domain"
)

// TableRepository defines the interface for loading raw transaction tables.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TableRepository
type TableRepository interface {
	ReadTable(ctx context.Context, path string) (*domain.Table, error)
}
