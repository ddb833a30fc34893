package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foamtrack/foamtrack-backend/internal/entries/domain"
	"github.com/redis/go-redis/v9"
)

// projectKeyPrefix namespaces project records: entries:{project}
const projectKeyPrefix = "entries:"

// ProjectRepository reads and writes whole project records in Redis.
// There is no field-level update primitive: every write replaces the
// full record, and no compare-and-swap is performed, so concurrent
// writers to the same project follow last-write-wins semantics.
type ProjectRepository struct {
	client *redis.Client
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Read fetches the record for a project. A missing key, a value that is
// not valid JSON, or a value without an entries array all yield an
// empty record without persisting anything; a brand-new project is a
// normal read path, not an error.
func (r *ProjectRepository) Read(ctx context.Context, project string) (*domain.ProjectRecord, error) {
	data, err := r.client.Get(ctx, r.Key(project)).Result()
	if err == redis.Nil {
		return &domain.ProjectRecord{Entries: []domain.Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project record: %w", err)
	}

	var rec domain.ProjectRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil || rec.Entries == nil {
		return &domain.ProjectRecord{Entries: []domain.Entry{}}, nil
	}

	return &rec, nil
}

// Write serializes the complete record and stores it, replacing any
// prior value in full. Records do not expire.
func (r *ProjectRepository) Write(ctx context.Context, project string, rec *domain.ProjectRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal project record: %w", err)
	}

	if err := r.client.Set(ctx, r.Key(project), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write project record: %w", err)
	}

	return nil
}

// Projects scans the keyspace for all stored project names.
func (r *ProjectRepository) Projects(ctx context.Context) ([]string, error) {
	var (
		projects []string
		cursor   uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, projectKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan project keys: %w", err)
		}
		for _, k := range keys {
			projects = append(projects, strings.TrimPrefix(k, projectKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return projects, nil
}

// Key returns the storage key for a sanitized project name.
func (r *ProjectRepository) Key(project string) string {
	return projectKeyPrefix + project
}
