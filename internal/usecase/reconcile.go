package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ledger-reconciler/internal/domain"
	"ledger-reconciler/internal/engine"
	"ledger-reconciler/internal/normalize"
)

// Source identifies one ledger to reconcile: where to load it from and the
// display name used in reports.
type Source struct {
	Path string
	Name string
}

// ReconcileUseCase orchestrates loading, normalization and matching.
type ReconcileUseCase struct {
	repo   TableRepository
	engine *engine.Engine
	logger *slog.Logger
}

// NewReconcileUseCase creates a new instance of the usecase.
func NewReconcileUseCase(repo TableRepository, eng *engine.Engine, logger *slog.Logger) *ReconcileUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileUseCase{repo: repo, engine: eng, logger: logger}
}

// Reconcile loads both sources and runs the matching passes.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, a, b Source) (*domain.Result, error) {
	tableA, err := uc.repo.ReadTable(ctx, a.Path)
	if err != nil {
		return nil, fmt.Errorf("could not load source A: %w", err)
	}

	tableB, err := uc.repo.ReadTable(ctx, b.Path)
	if err != nil {
		return nil, fmt.Errorf("could not load source B: %w", err)
	}

	return uc.ReconcileTables(ctx, tableA, tableB, a.Name, b.Name)
}

// ReconcileTables runs the matching passes over already-loaded tables, as
// with uploaded files.
func (uc *ReconcileUseCase) ReconcileTables(ctx context.Context, tableA, tableB *domain.Table, nameA, nameB string) (*domain.Result, error) {
	ledgerA, err := normalize.Normalize(tableA, nameA)
	if err != nil {
		return nil, fmt.Errorf("could not normalize source A: %w", err)
	}

	ledgerB, err := normalize.Normalize(tableB, nameB)
	if err != nil {
		return nil, fmt.Errorf("could not normalize source B: %w", err)
	}

	uc.logParseWarnings(ledgerA)
	uc.logParseWarnings(ledgerB)

	res := uc.engine.Reconcile(ledgerA, ledgerB)

	uc.logger.Info("reconciliation finished",
		"run_id", res.RunID,
		"source_a", res.SourceA,
		"source_b", res.SourceB,
		"matched", res.Summary.Matched,
		"amount_mismatch", res.Summary.AmountMismatch,
		"unmatched_a", res.Summary.UnmatchedA,
		"unmatched_b", res.Summary.UnmatchedB,
	)
	return res, nil
}

// logParseWarnings reports every record whose amount could not be coerced.
// Such records stay in the run and surface as unmatched.
func (uc *ReconcileUseCase) logParseWarnings(l *domain.Ledger) {
	for _, rec := range l.Records {
		if rec.AmountOK {
			continue
		}
		uc.logger.Warn("amount not parseable, keeping record as unmatched",
			"source", l.Name,
			"row", rec.Index,
			"value", rec.GetOr(domain.FieldAmount, ""),
		)
	}
}
