package service

import (
	"Palisade/internal/api/dto"
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedOver 在指定流水仓库上组一个只用于查询动态流的服务
func feedOver(changes *fakeRecentChangeRepo, clock func() time.Time) *ModerationServiceImpl {
	return &ModerationServiceImpl{
		recentChangeRepo: changes,
		cfg:              testModerationConfig(),
		now:              clock,
	}
}

func TestWikiEventsAppearInRecentChanges(t *testing.T) {
	f := newWikiFixture()
	ctx := context.Background()

	article := f.createArticle(t, "general")
	first := f.draft(t, article.ID, "author-1", "v1")
	f.draft(t, article.ID, "author-2", "v2")

	_, err := f.svc.MarkStable(ctx, article.ID, first.ID, "mod-1")
	require.NoError(t, err)

	_, err = f.svc.Rollback(ctx, article.ID, "mod-1", &dto.RollbackDTO{
		TargetRevisionID: first.ID,
		Reason:           "vandalism",
	})
	require.NoError(t, err)

	feed := feedOver(f.changes, func() time.Time { return f.experts.clock })
	list, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{})
	require.NoError(t, err)
	// 两条 draft、一次发布、一次回滚
	assert.Equal(t, int64(4), list.Total)

	created, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{
		ChangeType: consts.ChangeTypeRevisionCreated,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.Total)
	for _, change := range created.Items {
		assert.Equal(t, consts.ChangeStatusApplied, change.Status)
		assert.Equal(t, article.ID, change.RefID)
	}

	stabilized, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{
		ChangeType: consts.ChangeTypeRevisionStabilized,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), stabilized.Total)
	assert.Equal(t, first.ID, stabilized.Items[0].ContentID)
	assert.Equal(t, "mod-1", stabilized.Items[0].ChangedBy)

	rollbacks, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{
		ChangeType: consts.ChangeTypeRollback,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), rollbacks.Total)
	assert.Equal(t, article.ID, rollbacks.Items[0].ContentID)
	assert.Equal(t, "vandalism", rollbacks.Items[0].Summary)
}

func TestEditRequestLifecycleInRecentChanges(t *testing.T) {
	f := newEditRequestFixture()
	ctx := context.Background()
	f.seedContent(t)

	created, err := f.svc.Create(ctx, "author-1", &dto.CreateEditRequestDTO{
		ContentType:  consts.ContentTypePost,
		ContentID:    "post-1",
		OriginalData: "old",
		EditedData:   "new",
	})
	require.NoError(t, err)

	feed := feedOver(f.changes, func() time.Time { return f.clock })
	pending, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{
		ChangedBy: "author-1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), pending.Total)
	assert.Equal(t, consts.ChangeTypeEditRequested, pending.Items[0].ChangeType)
	assert.Equal(t, consts.ChangeStatusPending, pending.Items[0].Status)
	assert.Equal(t, created.ID, pending.Items[0].RefID)

	// 审批结果同步到流水状态
	_, err = f.svc.Approve(ctx, created.ID, "mod-1", "looks good")
	require.NoError(t, err)

	approved, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{
		Status: consts.ChangeStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), approved.Total)
	assert.Equal(t, created.ID, approved.Items[0].RefID)
}

func TestRecentChangesWindowAndPagination(t *testing.T) {
	changes := newFakeRecentChangeRepo()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i, age := range []time.Duration{
		24 * time.Hour,
		10 * 24 * time.Hour,
		40 * 24 * time.Hour, // 默认窗口之外
	} {
		require.NoError(t, changes.Create(ctx, &model.RecentChange{
			ID:          fmt.Sprintf("rc_%d", i),
			ChangeType:  consts.ChangeTypeRevisionCreated,
			ContentType: consts.ContentTypeWikiRevision,
			ContentID:   fmt.Sprintf("wr_%d", i),
			ChangedBy:   "author-1",
			Status:      consts.ChangeStatusApplied,
			CreatedAt:   clock.Add(-age),
		}))
	}

	feed := feedOver(changes, func() time.Time { return clock })

	// 默认只回看 30 天
	list, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	// 放宽窗口后旧条目可见
	list, err = feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{AgeDays: 60})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)

	// 新的在前，分页不重不漏
	first, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{Page: 1, PageSize: 1})
	require.NoError(t, err)
	second, err := feed.ListRecentChanges(ctx, &dto.RecentChangesQueryDTO{Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Items, 1)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "rc_0", first.Items[0].ID)
	assert.Equal(t, "rc_1", second.Items[0].ID)
}
