package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/maptotext/mindmap/internal/repo"
)

// VersionPruneJob trims version history beyond the configured keep count and
// drops snapshots whose map record was deleted.
type VersionPruneJob struct {
	store    repo.Store
	versions *repo.VersionRepo
	maxKeep  int
}

func NewVersionPruneJob(store repo.Store, versions *repo.VersionRepo, maxKeep int) *VersionPruneJob {
	return &VersionPruneJob{store: store, versions: versions, maxKeep: maxKeep}
}

func (j *VersionPruneJob) Name() string {
	return "version_prune"
}

func (j *VersionPruneJob) Run(ctx context.Context) error {
	if j.store == nil || j.versions == nil {
		return nil
	}
	orphans, err := j.versions.DeleteOrphans(ctx)
	if err != nil {
		return err
	}
	maxKeep := j.maxKeep
	if maxKeep <= 0 {
		maxKeep = 20
	}
	infos, err := j.store.List(ctx)
	if err != nil {
		return err
	}
	var pruned int64
	for _, info := range infos {
		n, err := j.versions.PruneToKeep(ctx, info.ID, maxKeep)
		if err != nil {
			return err
		}
		pruned += n
	}
	if orphans > 0 || pruned > 0 {
		logutil.GetLogger(ctx).Info("version history pruned",
			zap.Int64("orphans", orphans), zap.Int64("pruned", pruned))
	}
	return nil
}
