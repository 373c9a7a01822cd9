// Package catalog manages the material catalog: the table whose row order
// fixes the column order of every ledger and of the stock summary.
package catalog

import (
	"context"
	"fmt"
	"strings"

	domaincatalog "github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/shared"
)

// RegisterMaterialRequest adds one material to the catalog.
type RegisterMaterialRequest struct {
	MaterialID string `json:"material_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// MaterialResponse is a catalog entry.
type MaterialResponse struct {
	MaterialID string `json:"material_id"`
	Name       string `json:"name"`
}

// MaterialService appends catalog rows and keeps the ledgers' material
// columns in step with the catalog.
type MaterialService struct {
	store      shared.TableStore
	loader     *domaincatalog.Loader
	reconciler *ledger.Reconciler
	layouts    []ledger.Layout
}

// NewMaterialService wires the catalog table to the ledgers whose columns
// must follow it.
func NewMaterialService(store shared.TableStore, loader *domaincatalog.Loader, layouts ...ledger.Layout) *MaterialService {
	return &MaterialService{
		store:      store,
		loader:     loader,
		reconciler: ledger.NewReconciler(store),
		layouts:    layouts,
	}
}

// Register appends a material and immediately grows every ledger so the new
// material has a column before any order references it.
func (s *MaterialService) Register(ctx context.Context, req RegisterMaterialRequest) (*MaterialResponse, error) {
	id := strings.TrimSpace(req.MaterialID)
	name := strings.TrimSpace(req.Name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: material id and name are required", shared.ErrInvalidInput)
	}

	materials, known, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if _, ok := known[id]; ok {
		return nil, fmt.Errorf("%w: material %s", shared.ErrAlreadyExists, id)
	}

	if err := s.store.AppendRow(ctx, s.loader.Table(), []string{id, name}); err != nil {
		return nil, fmt.Errorf("append material: %w", err)
	}

	ids := make([]string, 0, len(materials)+1)
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	ids = append(ids, id)
	for _, layout := range s.layouts {
		if err := s.reconciler.EnsureMaterialColumns(ctx, layout, ids); err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", layout.Table, err)
		}
	}
	return &MaterialResponse{MaterialID: id, Name: name}, nil
}

// List returns the catalog in row order.
func (s *MaterialService) List(ctx context.Context) ([]MaterialResponse, error) {
	materials, _, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	out := make([]MaterialResponse, len(materials))
	for i, m := range materials {
		out[i] = MaterialResponse{MaterialID: m.ID, Name: m.Name}
	}
	return out, nil
}
