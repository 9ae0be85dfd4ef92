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

type moderationFixture struct {
	svc       *ModerationServiceImpl
	queueRepo *fakeQueueRepo
	logRepo   *fakeActionLogRepo
	sds       *fakeSoftDeleteRepo
	changes   *fakeRecentChangeRepo
	clock     time.Time
}

func newModerationFixture() *moderationFixture {
	sds := newFakeSoftDeleteRepo()
	queue := newFakeQueueRepo(sds)
	logRepo := &fakeActionLogRepo{queue: queue}
	changes := newFakeRecentChangeRepo()
	f := &moderationFixture{
		queueRepo: queue,
		logRepo:   logRepo,
		sds:       sds,
		changes:   changes,
		clock:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = &ModerationServiceImpl{
		queueRepo:        queue,
		actionLogRepo:    logRepo,
		softDeleteRepo:   sds,
		recentChangeRepo: changes,
		cfg:              testModerationConfig(),
		now:              func() time.Time { return f.clock },
	}
	return f
}

func (f *moderationFixture) seedItem(t *testing.T, id string, reporters ...string) *model.ModerationQueueItem {
	t.Helper()
	item := &model.ModerationQueueItem{
		ID:          id,
		ContentType: consts.ContentTypePost,
		ContentID:   "post-" + id,
		ReportedBy:  reporters,
		ReportCount: len(reporters),
		Priority:    consts.PriorityLow,
		Status:      consts.QueueStatusPending,
	}
	require.NoError(t, f.queueRepo.Create(context.Background(), item))
	return item
}

func TestProcessResolvesAndLogs(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	// post-1 被五人举报后以 reject 处理
	item := f.seedItem(t, "mq_1", "user-1", "user-2", "user-3", "user-4", "user-5")

	result, err := f.svc.Process(ctx, item.ID, "mod-1", &dto.ProcessActionDTO{
		Action:        consts.ActionReject,
		Justification: "Violates guidelines",
	})
	require.NoError(t, err)
	assert.Equal(t, consts.QueueStatusResolved, result.Status)
	assert.Equal(t, "Violates guidelines", result.Justification)

	logs, err := f.svc.ListActionLogs(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, consts.ActionReject, logs[0].Action)
	assert.Equal(t, "mod-1", logs[0].PerformedBy)
	assert.Equal(t, "Violates guidelines", logs[0].Justification)
}

func TestProcessRequiresJustification(t *testing.T) {
	f := newModerationFixture()
	item := f.seedItem(t, "mq_1", "user-1")

	for _, justification := range []string{"", "   ", "\t\n"} {
		_, err := f.svc.Process(context.Background(), item.ID, "mod-1", &dto.ProcessActionDTO{
			Action:        consts.ActionApprove,
			Justification: justification,
		})
		require.ErrorIs(t, err, ErrJustificationRequired)
		assert.Equal(t, "Justification is required", err.Error())
	}

	// 校验失败不得留下任何日志
	count, err := f.logRepo.CountByQueueItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcessRejectsUnknownAction(t *testing.T) {
	f := newModerationFixture()
	item := f.seedItem(t, "mq_1", "user-1")
	_, err := f.svc.Process(context.Background(), item.ID, "mod-1", &dto.ProcessActionDTO{
		Action:        "nuke",
		Justification: "why not",
	})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestProcessMissingItem(t *testing.T) {
	f := newModerationFixture()
	_, err := f.svc.Process(context.Background(), "mq_missing", "mod-1", &dto.ProcessActionDTO{
		Action:        consts.ActionApprove,
		Justification: "ok",
	})
	assert.ErrorIs(t, err, ErrQueueItemNotFound)
}

func TestProcessIsIdempotent(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()
	item := f.seedItem(t, "mq_1", "user-1")

	_, err := f.svc.Process(ctx, item.ID, "mod-1", &dto.ProcessActionDTO{
		Action:        consts.ActionApprove,
		Justification: "first pass",
	})
	require.NoError(t, err)

	// 重复处理返回冲突，且不追加第二条日志
	_, err = f.svc.Process(ctx, item.ID, "mod-2", &dto.ProcessActionDTO{
		Action:        consts.ActionReject,
		Justification: "second pass",
	})
	assert.ErrorIs(t, err, ErrQueueItemResolved)

	count, err := f.logRepo.CountByQueueItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProcessDeleteCreatesSoftDeleteRecord(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()
	item := f.seedItem(t, "mq_1", "user-1")

	_, err := f.svc.Process(ctx, item.ID, "mod-1", &dto.ProcessActionDTO{
		Action:        consts.ActionDelete,
		Justification: "spam",
	})
	require.NoError(t, err)

	record, err := f.sds.GetByContent(ctx, item.ContentType, item.ContentID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "mod-1", record.DeletedBy)
	assert.Equal(t, item.ID, record.QueueItemID)
	assert.Equal(t, f.clock, record.DeletedAt)
	assert.Equal(t, f.clock.AddDate(0, 0, 90), record.ExpiresAt)
}

func TestProcessApproveLeavesNoTombstone(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()
	item := f.seedItem(t, "mq_1", "user-1")

	_, err := f.svc.Process(ctx, item.ID, "mod-1", &dto.ProcessActionDTO{
		Action:        consts.ActionApprove,
		Justification: "fine",
	})
	require.NoError(t, err)

	record, err := f.sds.GetByContent(ctx, item.ContentType, item.ContentID)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBulkProcessContinuesPastFailures(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()
	first := f.seedItem(t, "mq_1", "user-1")
	second := f.seedItem(t, "mq_2", "user-1")

	result, err := f.svc.BulkProcess(ctx, "mod-1", &dto.BulkProcessDTO{
		Items: []dto.BulkProcessItemDTO{
			{QueueItemID: first.ID, Action: consts.ActionApprove, Justification: "ok"},
			{QueueItemID: "mq_missing", Action: consts.ActionApprove, Justification: "ok"},
			{QueueItemID: second.ID, Action: consts.ActionReject, Justification: ""},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "mq_missing", result.Errors[0].QueueItemID)
	assert.Equal(t, second.ID, result.Errors[1].QueueItemID)
	assert.Equal(t, "Justification is required", result.Errors[1].Error)

	// 失败项不影响成功项落库
	resolved, err := f.queueRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.QueueStatusResolved, resolved.Status)
	pending, err := f.queueRepo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.QueueStatusPending, pending.Status)
}

func TestCleanupExpiredSoftDeletes(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	for i, expiresAt := range []time.Time{
		f.clock.Add(-time.Hour),      // 已过期
		f.clock.Add(-24 * time.Hour), // 已过期
		f.clock,                      // 恰好到期，expires_at <= now 也要清掉
		f.clock.Add(time.Hour),       // 还在窗口内
	} {
		require.NoError(t, f.sds.Create(ctx, &model.SoftDeleteRecord{
			ID:          fmt.Sprintf("sdr_%d", i),
			ContentType: consts.ContentTypePost,
			ContentID:   fmt.Sprintf("post-%d", i),
			DeletedBy:   "mod-1",
			DeletedAt:   expiresAt.AddDate(0, 0, -90),
			ExpiresAt:   expiresAt,
		}))
	}

	purged, err := f.svc.CleanupExpiredSoftDeletes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)

	// 再跑一次应当无事发生
	purged, err = f.svc.CleanupExpiredSoftDeletes(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)

	remaining, err := f.svc.ListTrash(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestRestoreWithinRetentionWindow(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	require.NoError(t, f.sds.Create(ctx, &model.SoftDeleteRecord{
		ID:          "sdr_1",
		ContentType: consts.ContentTypePost,
		ContentID:   "post-1",
		DeletedBy:   "mod-1",
		DeletedAt:   f.clock.AddDate(0, 0, -1),
		ExpiresAt:   f.clock.AddDate(0, 0, 89),
	}))

	err := f.svc.Restore(ctx, &dto.RestoreDTO{ContentType: consts.ContentTypePost, ContentID: "post-1"})
	require.NoError(t, err)

	record, err := f.sds.GetByContent(ctx, consts.ContentTypePost, "post-1")
	require.NoError(t, err)
	assert.Nil(t, record, "restore must remove the tombstone")

	err = f.svc.Restore(ctx, &dto.RestoreDTO{ContentType: consts.ContentTypePost, ContentID: "post-1"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRestoreAfterExpiry(t *testing.T) {
	f := newModerationFixture()
	ctx := context.Background()

	require.NoError(t, f.sds.Create(ctx, &model.SoftDeleteRecord{
		ID:          "sdr_1",
		ContentType: consts.ContentTypePost,
		ContentID:   "post-1",
		DeletedBy:   "mod-1",
		DeletedAt:   f.clock.AddDate(0, 0, -91),
		ExpiresAt:   f.clock.AddDate(0, 0, -1),
	}))

	err := f.svc.Restore(ctx, &dto.RestoreDTO{ContentType: consts.ContentTypePost, ContentID: "post-1"})
	assert.ErrorIs(t, err, ErrRecordExpired)
}
