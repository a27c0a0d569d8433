package service

import (
	"context"
	"encoding/json"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/maptotext/mindmap/internal/idgen"
	"github.com/maptotext/mindmap/internal/model"
	appErr "github.com/maptotext/mindmap/internal/pkg/errors"
	"github.com/maptotext/mindmap/internal/pkg/timeutil"
	"github.com/maptotext/mindmap/internal/repo"
)

const (
	// DefaultTitle is the placeholder title of a map that was never named.
	DefaultTitle = "Untitled mind map"

	defaultBubbleText = "new text"
)

// MindMapService owns one mind map at a time: it loads the whole record,
// applies a copy-on-write mutation, and persists the whole record back.
type MindMapService struct {
	store    repo.Store
	versions *repo.VersionRepo
	ids      idgen.Generator
	maxKeep  int
}

func NewMindMapService(store repo.Store, versions *repo.VersionRepo, ids idgen.Generator, versionMaxKeep int) *MindMapService {
	return &MindMapService{store: store, versions: versions, ids: ids, maxKeep: versionMaxKeep}
}

func (s *MindMapService) emptyMap(id string) *model.MindMap {
	return &model.MindMap{ID: id, Title: DefaultTitle, Bubbles: []model.Bubble{}}
}

// Create mints a fresh map id. The id is generated exactly once here and is
// stable for the lifetime of the document.
func (s *MindMapService) Create(ctx context.Context, title string) (*model.MindMap, error) {
	m := s.emptyMap(s.ids.NewID())
	if title != "" {
		m.Title = title
	}
	if err := s.persist(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Load returns the map saved under id, or an empty document when there is no
// record or the storage layer fails. Storage failure is reported to the log
// only; it must never surface to the caller as a fatal error.
func (s *MindMapService) Load(ctx context.Context, id string) *model.MindMap {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		if !appErr.IsNotFound(err) {
			logutil.GetLogger(ctx).Warn("load mindmap failed, falling back to empty document",
				zap.String("id", id), zap.Error(err))
		}
		return s.emptyMap(id)
	}
	return m
}

func (s *MindMapService) List(ctx context.Context) ([]model.MindMapInfo, error) {
	return s.store.List(ctx)
}

func (s *MindMapService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.versions == nil {
		return nil
	}
	return s.versions.DeleteByMindMap(ctx, id)
}

func (s *MindMapService) Rename(ctx context.Context, id, title string) (*model.MindMap, error) {
	m := s.Load(ctx, id)
	if title == "" {
		title = DefaultTitle
	}
	m.Title = title
	if err := s.persist(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddBubble appends a new bubble with default text, normal importance and no
// keywords to the end of the sequence.
func (s *MindMapService) AddBubble(ctx context.Context, mapID string) (*model.MindMap, *model.Bubble, error) {
	m := s.Load(ctx, mapID)
	b := model.Bubble{
		ID:         s.ids.NewID(),
		Text:       defaultBubbleText,
		Importance: model.ImportanceNormal,
		Keywords:   []model.Keyword{},
	}
	m.Bubbles = appendBubble(m.Bubbles, b)
	if err := s.persist(ctx, m); err != nil {
		return nil, nil, err
	}
	return m, &b, nil
}

func (s *MindMapService) UpdateBubbleText(ctx context.Context, mapID, bubbleID, text string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := updateBubbleText(m.Bubbles, bubbleID, text)
	return s.applyBubbles(ctx, m, next, changed)
}

// SetImportance stores the label as given. Labels outside the recognized set
// are a caller-contract matter, not a store error; see model.IsRecognizedImportance.
func (s *MindMapService) SetImportance(ctx context.Context, mapID, bubbleID, label string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := setBubbleImportance(m.Bubbles, bubbleID, label)
	return s.applyBubbles(ctx, m, next, changed)
}

func (s *MindMapService) DeleteBubble(ctx context.Context, mapID, bubbleID string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := deleteBubble(m.Bubbles, bubbleID)
	return s.applyBubbles(ctx, m, next, changed)
}

func (s *MindMapService) MoveBubbleBefore(ctx context.Context, mapID, bubbleID, targetID string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := moveBubble(m.Bubbles, bubbleID, targetID, false)
	return s.applyBubbles(ctx, m, next, changed)
}

func (s *MindMapService) MoveBubbleAfter(ctx context.Context, mapID, bubbleID, targetID string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := moveBubble(m.Bubbles, bubbleID, targetID, true)
	return s.applyBubbles(ctx, m, next, changed)
}

// AddKeyword appends a keyword to one bubble. The returned keyword is nil
// when the bubble does not exist (the map is left untouched).
func (s *MindMapService) AddKeyword(ctx context.Context, mapID, bubbleID, value string) (*model.MindMap, *model.Keyword, error) {
	m := s.Load(ctx, mapID)
	kw := model.Keyword{ID: s.ids.NewID(), Value: value}
	next, changed := appendKeyword(m.Bubbles, bubbleID, kw)
	m, err := s.applyBubbles(ctx, m, next, changed)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return m, nil, nil
	}
	return m, &kw, nil
}

func (s *MindMapService) UpdateKeyword(ctx context.Context, mapID, bubbleID, keywordID, value string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := updateKeyword(m.Bubbles, bubbleID, keywordID, value)
	return s.applyBubbles(ctx, m, next, changed)
}

func (s *MindMapService) DeleteKeyword(ctx context.Context, mapID, bubbleID, keywordID string) (*model.MindMap, error) {
	m := s.Load(ctx, mapID)
	next, changed := deleteKeyword(m.Bubbles, bubbleID, keywordID)
	return s.applyBubbles(ctx, m, next, changed)
}

func (s *MindMapService) ListVersions(ctx context.Context, mapID string) ([]model.MindMapVersion, error) {
	return s.versions.List(ctx, mapID)
}

func (s *MindMapService) GetVersion(ctx context.Context, mapID string, version int) (*model.MindMapVersion, error) {
	return s.versions.Get(ctx, mapID, version)
}

// RestoreVersion replaces the current document with a stored snapshot. The
// restored state is saved as a fresh version on top of the history.
func (s *MindMapService) RestoreVersion(ctx context.Context, mapID string, version int) (*model.MindMap, error) {
	v, err := s.versions.Get(ctx, mapID, version)
	if err != nil {
		return nil, err
	}
	var m model.MindMap
	if err := json.Unmarshal([]byte(v.Data), &m); err != nil {
		return nil, err
	}
	m.ID = mapID
	if m.Bubbles == nil {
		m.Bubbles = []model.Bubble{}
	}
	if err := s.persist(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// applyBubbles persists only when the mutation actually changed something;
// a miss on a stale id stays a silent no-op.
func (s *MindMapService) applyBubbles(ctx context.Context, m *model.MindMap, next []model.Bubble, changed bool) (*model.MindMap, error) {
	m.Bubbles = next
	if !changed {
		return m, nil
	}
	if err := s.persist(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MindMapService) persist(ctx context.Context, m *model.MindMap) error {
	if err := s.store.Save(ctx, m, timeutil.NowUnix()); err != nil {
		return err
	}
	return s.snapshot(ctx, m)
}

func (s *MindMapService) snapshot(ctx context.Context, m *model.MindMap) error {
	if s.versions == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	latest, err := s.versions.GetLatestVersion(ctx, m.ID)
	if err != nil && !appErr.IsNotFound(err) {
		return err
	}
	v := &model.MindMapVersion{
		ID:        s.ids.NewID(),
		MindMapID: m.ID,
		Version:   latest + 1,
		Title:     m.Title,
		Data:      string(data),
		Ctime:     timeutil.NowUnix(),
	}
	if err := s.versions.Create(ctx, v); err != nil {
		return err
	}
	if s.maxKeep > 0 {
		if _, err := s.versions.PruneToKeep(ctx, m.ID, s.maxKeep); err != nil {
			return err
		}
	}
	return nil
}
