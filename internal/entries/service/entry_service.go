package service

import (
	"context"
	"sort"
	"time"

	"github.com/foamtrack/foamtrack-backend/internal/entries/domain"
	"github.com/foamtrack/foamtrack-backend/internal/entries/repository"
	"github.com/google/uuid"
)

// EntryService implements the entry collection operations over a
// project's record.
//
// Every mutation is a whole-record read-modify-write with no locking or
// compare-and-swap: two concurrent writers to the same project can
// interleave and one writer's change can be overwritten (last write
// wins at the storage layer). This mirrors the original key-value
// contract and is an accepted limitation.
type EntryService struct {
	repo *repository.ProjectRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(repo *repository.ProjectRepository) *EntryService {
	return &EntryService{repo: repo}
}

// List returns a project's entries sorted by creation time, newest
// first. It never writes.
func (s *EntryService) List(ctx context.Context, project string) ([]domain.Entry, error) {
	rec, err := s.repo.Read(ctx, project)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(rec.Entries)
	return rec.Entries, nil
}

// Create appends a new entry built from the normalized input fields and
// writes the record back. The ID is generated here and createdAt equals
// updatedAt on a fresh entry.
func (s *EntryService) Create(ctx context.Context, project string, raw map[string]any) (*domain.Entry, error) {
	rec, err := s.repo.Read(ctx, project)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
		EntryFields: domain.NormalizeFields(raw),
	}

	rec.Entries = append(rec.Entries, entry)
	if err := s.repo.Write(ctx, project, rec); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Update replaces the normalized fields of the entry with the given ID
// and refreshes updatedAt. ID and createdAt are never touched.
func (s *EntryService) Update(ctx context.Context, project, id string, raw map[string]any) (*domain.Entry, error) {
	rec, err := s.repo.Read(ctx, project)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range rec.Entries {
		if rec.Entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrEntryNotFound
	}

	rec.Entries[idx].EntryFields = domain.NormalizeFields(raw)
	rec.Entries[idx].UpdatedAt = time.Now().UTC()

	if err := s.repo.Write(ctx, project, rec); err != nil {
		return nil, err
	}

	entry := rec.Entries[idx]
	return &entry, nil
}

// Delete removes the entry with the given ID. Removal is permanent; if
// no entry matched the record is left untouched and ErrEntryNotFound is
// returned.
func (s *EntryService) Delete(ctx context.Context, project, id string) error {
	rec, err := s.repo.Read(ctx, project)
	if err != nil {
		return err
	}

	kept := rec.Entries[:0]
	for _, e := range rec.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(rec.Entries) {
		return domain.ErrEntryNotFound
	}
	rec.Entries = kept

	return s.repo.Write(ctx, project, rec)
}

func sortNewestFirst(entries []domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
