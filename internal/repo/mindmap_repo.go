package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/maptotext/mindmap/internal/model"
	appErr "github.com/maptotext/mindmap/internal/pkg/errors"
)

// Store is the persistence contract for whole mind-map records. The unit of
// atomicity is exactly one record: Save replaces the record in full, so a
// concurrent reader sees either the old or the new document, never a mix.
type Store interface {
	Load(ctx context.Context, id string) (*model.MindMap, error)
	Save(ctx context.Context, m *model.MindMap, mtime int64) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.MindMapInfo, error)
}

type MindMapRepo struct {
	db *sqlx.DB
}

func NewMindMapRepo(db *sqlx.DB) *MindMapRepo {
	return &MindMapRepo{db: db}
}

func (r *MindMapRepo) Load(ctx context.Context, id string) (*model.MindMap, error) {
	where := map[string]interface{}{
		"id": id,
	}
	sqlStr, args, err := builder.BuildSelect("mindmaps", where, []string{"data"})
	if err != nil {
		return nil, err
	}
	var data string
	if err := r.db.GetContext(ctx, &data, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	var m model.MindMap
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	if m.Bubbles == nil {
		m.Bubbles = []model.Bubble{}
	}
	return &m, nil
}

func (r *MindMapRepo) Save(ctx context.Context, m *model.MindMap, mtime int64) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	// Single upsert statement keeps the replace atomic per record.
	_, err = r.db.ExecContext(ctx, `
INSERT INTO mindmaps (id, title, data, ctime, mtime)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET title = excluded.title, data = excluded.data, mtime = excluded.mtime`,
		m.ID, m.Title, string(data), mtime, mtime)
	return err
}

func (r *MindMapRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM mindmaps WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *MindMapRepo) List(ctx context.Context) ([]model.MindMapInfo, error) {
	where := map[string]interface{}{
		"_orderby": "mtime desc",
	}
	sqlStr, args, err := builder.BuildSelect("mindmaps", where, []string{"id", "title", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	infos := make([]model.MindMapInfo, 0)
	if err := r.db.SelectContext(ctx, &infos, sqlStr, args...); err != nil {
		return nil, err
	}
	return infos, nil
}
