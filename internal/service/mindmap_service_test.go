package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/maptotext/mindmap/internal/idgen"
	"github.com/maptotext/mindmap/internal/model"
	"github.com/maptotext/mindmap/internal/repo"
	"github.com/maptotext/mindmap/internal/service"
	"github.com/maptotext/mindmap/internal/testutil"
)

func newTestService(t *testing.T) (*service.MindMapService, *repo.VersionRepo, repo.Store) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	store := repo.NewMindMapRepo(db)
	versions := repo.NewVersionRepo(db)
	svc := service.NewMindMapService(store, versions, idgen.NewSequence("id"), 5)
	return svc, versions, store
}

func bubbleIDs(m *model.MindMap) []string {
	out := make([]string, 0, len(m.Bubbles))
	for _, b := range m.Bubbles {
		out = append(out, b.ID)
	}
	return out
}

func TestCreateMintsStableID(t *testing.T) {
	svc, _, _ := newTestService(t)

	m, err := svc.Create(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Equal(t, service.DefaultTitle, m.Title)
	require.Empty(t, m.Bubbles)

	loaded := svc.Load(context.Background(), m.ID)
	require.Equal(t, m.ID, loaded.ID)

	// id survives every later mutation
	after, _, err := svc.AddBubble(context.Background(), m.ID)
	require.NoError(t, err)
	require.Equal(t, m.ID, after.ID)
}

func TestLoadMissingYieldsEmptyDocument(t *testing.T) {
	svc, _, _ := newTestService(t)

	m := svc.Load(context.Background(), "never-saved")
	require.Equal(t, "never-saved", m.ID)
	require.Equal(t, service.DefaultTitle, m.Title)
	require.Empty(t, m.Bubbles)
}

func TestLoadStorageFailureDegradesToEmptyDocument(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	mock.ExpectQuery("SELECT data FROM mindmaps").WillReturnError(errors.New("disk I/O error"))

	store := repo.NewMindMapRepo(sqlx.NewDb(mockDB, "sqlite"))
	svc := service.NewMindMapService(store, nil, idgen.NewSequence("id"), 0)

	m := svc.Load(context.Background(), "m1")
	require.Equal(t, "m1", m.ID)
	require.Equal(t, service.DefaultTitle, m.Title)
	require.Empty(t, m.Bubbles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoundTrip(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "trip")
	require.NoError(t, err)
	_, b1, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	_, _, err = svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	_, err = svc.UpdateBubbleText(ctx, m.ID, b1.ID, "first bubble")
	require.NoError(t, err)
	_, err = svc.SetImportance(ctx, m.ID, b1.ID, model.ImportanceVeryImportant)
	require.NoError(t, err)
	_, _, err = svc.AddKeyword(ctx, m.ID, b1.ID, "alpha")
	require.NoError(t, err)
	expected, _, err := svc.AddKeyword(ctx, m.ID, b1.ID, "beta")
	require.NoError(t, err)

	// reload straight from the store: deep, order-sensitive equality
	reloaded, err := store.Load(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, expected, reloaded)
}

func TestScenarioAddTwiceThenMoveAfter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, first, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	m2, second, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)

	require.Len(t, m2.Bubbles, 2)
	for _, b := range m2.Bubbles {
		require.Equal(t, "new text", b.Text)
		require.Equal(t, model.ImportanceNormal, b.Importance)
	}

	moved, err := svc.MoveBubbleAfter(ctx, m.ID, first.ID, second.ID)
	require.NoError(t, err)
	require.Equal(t, []string{second.ID, first.ID}, bubbleIDs(moved))
}

func TestScenarioKeywordAddAddDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, b, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)

	_, alpha, err := svc.AddKeyword(ctx, m.ID, b.ID, "alpha")
	require.NoError(t, err)
	require.NotNil(t, alpha)
	_, beta, err := svc.AddKeyword(ctx, m.ID, b.ID, "beta")
	require.NoError(t, err)
	require.NotNil(t, beta)

	after, err := svc.DeleteKeyword(ctx, m.ID, b.ID, alpha.ID)
	require.NoError(t, err)
	require.Len(t, after.Bubbles[0].Keywords, 1)
	require.Equal(t, "beta", after.Bubbles[0].Keywords[0].Value)
}

func TestScenarioDeleteMiddleBubbleSurvivesReload(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "three")
	require.NoError(t, err)
	var ids []string
	for i := 0; i < 3; i++ {
		_, b, err := svc.AddBubble(ctx, m.ID)
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	_, err = svc.DeleteBubble(ctx, m.ID, ids[1])
	require.NoError(t, err)

	reloaded := svc.Load(ctx, m.ID)
	require.Equal(t, []string{ids[0], ids[2]}, bubbleIDs(reloaded))
}

func TestMoveIdempotenceBoundary(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)
	var ids []string
	for i := 0; i < 3; i++ {
		_, b, err := svc.AddBubble(ctx, m.ID)
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	for _, id := range ids {
		before, err := svc.MoveBubbleBefore(ctx, m.ID, id, id)
		require.NoError(t, err)
		require.Equal(t, ids, bubbleIDs(before))
		after, err := svc.MoveBubbleAfter(ctx, m.ID, id, id)
		require.NoError(t, err)
		require.Equal(t, ids, bubbleIDs(after))
	}
}

func TestNoopOnMissingIDSkipsPersist(t *testing.T) {
	svc, versions, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, b, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)

	baseline, err := versions.List(ctx, m.ID)
	require.NoError(t, err)

	_, err = svc.UpdateBubbleText(ctx, m.ID, "missing", "x")
	require.NoError(t, err)
	_, err = svc.SetImportance(ctx, m.ID, "missing", model.ImportanceLesson)
	require.NoError(t, err)
	_, err = svc.DeleteBubble(ctx, m.ID, "missing")
	require.NoError(t, err)
	_, err = svc.MoveBubbleBefore(ctx, m.ID, "missing", b.ID)
	require.NoError(t, err)
	_, err = svc.MoveBubbleAfter(ctx, m.ID, b.ID, "missing")
	require.NoError(t, err)
	_, err = svc.UpdateKeyword(ctx, m.ID, b.ID, "missing", "x")
	require.NoError(t, err)
	_, err = svc.DeleteKeyword(ctx, m.ID, b.ID, "missing")
	require.NoError(t, err)
	updated, kw, err := svc.AddKeyword(ctx, m.ID, "missing-bubble", "x")
	require.NoError(t, err)
	require.Nil(t, kw)
	require.Len(t, updated.Bubbles, 1)
	require.Empty(t, updated.Bubbles[0].Keywords)

	// a no-op never writes: no new version snapshots either
	afterwards, err := versions.List(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, afterwards, len(baseline))
}

func TestKeywordScopingAcrossBubbles(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, b1, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	_, b2, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	_, kw, err := svc.AddKeyword(ctx, m.ID, b1.ID, "alpha")
	require.NoError(t, err)

	// the keyword exists only under b1: ops qualified by b2 touch nothing
	afterUpdate, err := svc.UpdateKeyword(ctx, m.ID, b2.ID, kw.ID, "mutated")
	require.NoError(t, err)
	require.Equal(t, "alpha", afterUpdate.Bubbles[0].Keywords[0].Value)
	require.Empty(t, afterUpdate.Bubbles[1].Keywords)

	afterDelete, err := svc.DeleteKeyword(ctx, m.ID, b2.ID, kw.ID)
	require.NoError(t, err)
	require.Len(t, afterDelete.Bubbles[0].Keywords, 1)
}

func TestOrderPreservationUnderMixedOps(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "")
	require.NoError(t, err)

	adds, deletes := 0, 0
	var ids []string
	for i := 0; i < 5; i++ {
		_, b, err := svc.AddBubble(ctx, m.ID)
		require.NoError(t, err)
		ids = append(ids, b.ID)
		adds++
	}
	_, err = svc.DeleteBubble(ctx, m.ID, ids[2])
	require.NoError(t, err)
	deletes++

	// remaining: 0 1 3 4; move 4 before 0, then 1 after 3
	_, err = svc.MoveBubbleBefore(ctx, m.ID, ids[4], ids[0])
	require.NoError(t, err)
	final, err := svc.MoveBubbleAfter(ctx, m.ID, ids[1], ids[3])
	require.NoError(t, err)

	require.Len(t, final.Bubbles, adds-deletes)
	require.Equal(t, []string{ids[4], ids[0], ids[3], ids[1]}, bubbleIDs(final))
}

func TestRenameAndDelete(t *testing.T) {
	svc, versions, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "old name")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, m.ID, "new name")
	require.NoError(t, err)
	require.Equal(t, "new name", renamed.Title)

	cleared, err := svc.Rename(ctx, m.ID, "")
	require.NoError(t, err)
	require.Equal(t, service.DefaultTitle, cleared.Title)

	require.NoError(t, svc.Delete(ctx, m.ID))
	left, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, left)
	vs, err := versions.List(ctx, m.ID)
	require.NoError(t, err)
	require.Empty(t, vs)

	require.Error(t, svc.Delete(ctx, m.ID))
}

func TestVersionSnapshotsAndRestore(t *testing.T) {
	svc, versions, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "versioned")
	require.NoError(t, err)
	_, b, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	_, err = svc.UpdateBubbleText(ctx, m.ID, b.ID, "state three")
	require.NoError(t, err)

	vs, err := versions.List(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, vs, 3)
	require.Equal(t, 3, vs[0].Version)

	// version 2 is the one-bubble state with default text
	restored, err := svc.RestoreVersion(ctx, m.ID, 2)
	require.NoError(t, err)
	require.Len(t, restored.Bubbles, 1)
	require.Equal(t, "new text", restored.Bubbles[0].Text)

	// restore itself is saved on top of the history
	vs, err = versions.List(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 4, vs[0].Version)

	_, err = svc.RestoreVersion(ctx, m.ID, 99)
	require.Error(t, err)
}

func TestVersionHistoryTrimmedToMaxKeep(t *testing.T) {
	svc, versions, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "busy")
	require.NoError(t, err)
	_, b, err := svc.AddBubble(ctx, m.ID)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err = svc.UpdateBubbleText(ctx, m.ID, b.ID, "edit")
		require.NoError(t, err)
		_, err = svc.UpdateBubbleText(ctx, m.ID, b.ID, "edit again")
		require.NoError(t, err)
	}

	vs, err := versions.List(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, vs, 5)
	require.Equal(t, 22, vs[0].Version)
}
