package job_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maptotext/mindmap/internal/job"
	"github.com/maptotext/mindmap/internal/model"
	"github.com/maptotext/mindmap/internal/repo"
	"github.com/maptotext/mindmap/internal/testutil"
)

func TestVersionPruneJob(t *testing.T) {
	db := testutil.OpenTestDB(t)
	maps := repo.NewMindMapRepo(db)
	versions := repo.NewVersionRepo(db)
	ctx := context.Background()

	require.NoError(t, maps.Save(ctx, &model.MindMap{ID: "map-1", Title: "t", Bubbles: []model.Bubble{}}, 100))
	for i := 1; i <= 8; i++ {
		require.NoError(t, versions.Create(ctx, &model.MindMapVersion{
			ID:        fmt.Sprintf("map-1-v%d", i),
			MindMapID: "map-1",
			Version:   i,
			Title:     "t",
			Data:      "{}",
			Ctime:     int64(i),
		}))
	}
	// snapshots of a map whose record is already gone
	for i := 1; i <= 4; i++ {
		require.NoError(t, versions.Create(ctx, &model.MindMapVersion{
			ID:        fmt.Sprintf("gone-v%d", i),
			MindMapID: "gone",
			Version:   i,
			Title:     "t",
			Data:      "{}",
			Ctime:     int64(i),
		}))
	}

	pruner := job.NewVersionPruneJob(maps, versions, 3)
	require.Equal(t, "version_prune", pruner.Name())
	require.NoError(t, pruner.Run(ctx))

	kept, err := versions.List(ctx, "map-1")
	require.NoError(t, err)
	require.Len(t, kept, 3)
	require.Equal(t, 8, kept[0].Version)
	require.Equal(t, 6, kept[2].Version)

	orphans, err := versions.List(ctx, "gone")
	require.NoError(t, err)
	require.Empty(t, orphans)
}
