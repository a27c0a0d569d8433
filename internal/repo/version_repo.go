package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/maptotext/mindmap/internal/model"
	appErr "github.com/maptotext/mindmap/internal/pkg/errors"
)

type VersionRepo struct {
	db *sqlx.DB
}

func NewVersionRepo(db *sqlx.DB) *VersionRepo {
	return &VersionRepo{db: db}
}

func (r *VersionRepo) Create(ctx context.Context, version *model.MindMapVersion) error {
	data := map[string]interface{}{
		"id":         version.ID,
		"mindmap_id": version.MindMapID,
		"version":    version.Version,
		"title":      version.Title,
		"data":       version.Data,
		"ctime":      version.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("mindmap_versions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *VersionRepo) GetLatestVersion(ctx context.Context, mapID string) (int, error) {
	where := map[string]interface{}{
		"mindmap_id": mapID,
		"_orderby":   "version desc",
		"_limit":     []uint{0, 1},
	}
	sqlStr, args, err := builder.BuildSelect("mindmap_versions", where, []string{"version"})
	if err != nil {
		return 0, err
	}
	var version int
	if err := r.db.GetContext(ctx, &version, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErr.ErrNotFound
		}
		return 0, err
	}
	return version, nil
}

func (r *VersionRepo) List(ctx context.Context, mapID string) ([]model.MindMapVersion, error) {
	where := map[string]interface{}{
		"mindmap_id": mapID,
		"_orderby":   "version desc",
	}
	sqlStr, args, err := builder.BuildSelect("mindmap_versions", where, []string{"id", "mindmap_id", "version", "title", "data", "ctime"})
	if err != nil {
		return nil, err
	}
	versions := make([]model.MindMapVersion, 0)
	if err := r.db.SelectContext(ctx, &versions, sqlStr, args...); err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *VersionRepo) Get(ctx context.Context, mapID string, version int) (*model.MindMapVersion, error) {
	where := map[string]interface{}{
		"mindmap_id": mapID,
		"version":    version,
	}
	sqlStr, args, err := builder.BuildSelect("mindmap_versions", where, []string{"id", "mindmap_id", "version", "title", "data", "ctime"})
	if err != nil {
		return nil, err
	}
	var v model.MindMapVersion
	if err := r.db.GetContext(ctx, &v, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VersionRepo) ListAll(ctx context.Context) ([]model.MindMapVersion, error) {
	where := map[string]interface{}{
		"_orderby": "mindmap_id, version desc",
	}
	sqlStr, args, err := builder.BuildSelect("mindmap_versions", where, []string{"id", "mindmap_id", "version", "title", "data", "ctime"})
	if err != nil {
		return nil, err
	}
	versions := make([]model.MindMapVersion, 0)
	if err := r.db.SelectContext(ctx, &versions, sqlStr, args...); err != nil {
		return nil, err
	}
	return versions, nil
}

// PruneToKeep drops the oldest snapshots of one map so at most keep remain.
func (r *VersionRepo) PruneToKeep(ctx context.Context, mapID string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx, `
DELETE FROM mindmap_versions
WHERE mindmap_id = ?
  AND version <= (SELECT MAX(version) FROM mindmap_versions WHERE mindmap_id = ?) - ?`,
		mapID, mapID, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *VersionRepo) DeleteByMindMap(ctx context.Context, mapID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM mindmap_versions WHERE mindmap_id = ?", mapID)
	return err
}

// DeleteOrphans removes snapshots whose owning map record is gone.
func (r *VersionRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM mindmap_versions WHERE mindmap_id NOT IN (SELECT id FROM mindmaps)")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
