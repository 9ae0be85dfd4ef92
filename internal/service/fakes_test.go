package service

import (
	"Palisade/internal/model"
	"Palisade/internal/pkg/consts"
	"Palisade/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// 内存存储假实现，语义对齐 gorm 实现：找不到返回 (nil, nil)，
// 读写返回副本避免测试与被测代码共享可变状态

type fakeLocker struct {
	mu    sync.Mutex
	held  map[string]bool
	fail  bool
	locks int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail || l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	l.locks++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, true, nil
}

type fakeContentRepo struct {
	mu       sync.Mutex
	contents map[string]*model.Content // contentType:id
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: map[string]*model.Content{}}
}

func contentKey(contentType, contentID string) string {
	return contentType + ":" + contentID
}

func (r *fakeContentRepo) Create(_ context.Context, content *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *content
	r.contents[contentKey(content.ContentType, content.ID)] = &c
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, contentType, contentID string) (*model.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[contentKey(contentType, contentID)]
	if !ok {
		return nil, nil
	}
	c := *content
	return &c, nil
}

type fakeQueueRepo struct {
	mu    sync.Mutex
	items map[string]*model.ModerationQueueItem
	logs  []*model.ModerationActionLog
	sds   *fakeSoftDeleteRepo // delete 动作的墓碑与 resolve 同单元写入
	seq   int
}

func newFakeQueueRepo(sds *fakeSoftDeleteRepo) *fakeQueueRepo {
	return &fakeQueueRepo{items: map[string]*model.ModerationQueueItem{}, sds: sds}
}

func (r *fakeQueueRepo) Create(_ context.Context, item *model.ModerationQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeQueueRepo) GetByID(_ context.Context, id string) (*model.ModerationQueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *fakeQueueRepo) GetLiveByContent(_ context.Context, contentType, contentID string) (*model.ModerationQueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ContentType == contentType && item.ContentID == contentID && item.Status != consts.QueueStatusResolved {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeQueueRepo) Update(_ context.Context, item *model.ModerationQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	if old, ok := r.items[item.ID]; ok {
		clone.CreatedAt = old.CreatedAt
	}
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeQueueRepo) List(_ context.Context, q repository.QueueQuery) ([]*model.ModerationQueueItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*model.ModerationQueueItem
	for _, item := range r.items {
		if item.ContentType != q.ContentType {
			continue
		}
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		clone := *item
		matched = append(matched, &clone)
	}

	desc := q.SortOrder != "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch q.SortBy {
		case "aiScore":
			ai, bi := 0, 0
			if a.AIScore != nil {
				ai = *a.AIScore
			}
			if b.AIScore != nil {
				bi = *b.AIScore
			}
			if ai == bi {
				return a.ID < b.ID
			}
			less = ai < bi
		case "createdAt":
			if a.CreatedAt.Equal(b.CreatedAt) {
				return a.ID < b.ID
			}
			less = a.CreatedAt.Before(b.CreatedAt)
		default: // priority，平局按 createdAt 降序
			if priorityRank[a.Priority] == priorityRank[b.Priority] {
				return a.CreatedAt.After(b.CreatedAt)
			}
			less = priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		if desc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeQueueRepo) CountByStatus(_ context.Context, contentType string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, item := range r.items {
		if item.ContentType == contentType {
			counts[item.Status]++
		}
	}
	return counts, nil
}

func (r *fakeQueueRepo) ResolveWithLog(_ context.Context, itemID, justification string, logRow *model.ModerationActionLog, sd *model.SoftDeleteRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.Status == consts.QueueStatusResolved {
		return false, nil
	}
	item.Status = consts.QueueStatusResolved
	item.Justification = justification
	logClone := *logRow
	r.logs = append(r.logs, &logClone)
	if sd != nil && r.sds != nil {
		sdClone := *sd
		r.sds.records[sd.ID] = &sdClone
	}
	return true, nil
}

type fakeActionLogRepo struct {
	queue *fakeQueueRepo
}

func (r *fakeActionLogRepo) Create(_ context.Context, logRow *model.ModerationActionLog) error {
	r.queue.mu.Lock()
	defer r.queue.mu.Unlock()
	clone := *logRow
	r.queue.logs = append(r.queue.logs, &clone)
	return nil
}

func (r *fakeActionLogRepo) ListByQueueItem(_ context.Context, queueItemID string) ([]*model.ModerationActionLog, error) {
	r.queue.mu.Lock()
	defer r.queue.mu.Unlock()
	var rows []*model.ModerationActionLog
	for _, row := range r.queue.logs {
		if row.QueueItemID == queueItemID {
			clone := *row
			rows = append(rows, &clone)
		}
	}
	return rows, nil
}

func (r *fakeActionLogRepo) CountByQueueItem(_ context.Context, queueItemID string) (int64, error) {
	rows, _ := r.ListByQueueItem(context.Background(), queueItemID)
	return int64(len(rows)), nil
}

type fakeSoftDeleteRepo struct {
	mu      sync.Mutex
	records map[string]*model.SoftDeleteRecord
}

func newFakeSoftDeleteRepo() *fakeSoftDeleteRepo {
	return &fakeSoftDeleteRepo{records: map[string]*model.SoftDeleteRecord{}}
}

func (r *fakeSoftDeleteRepo) Create(_ context.Context, record *model.SoftDeleteRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeSoftDeleteRepo) GetByContent(_ context.Context, contentType, contentID string) (*model.SoftDeleteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.ContentType == contentType && record.ContentID == contentID {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeSoftDeleteRepo) List(_ context.Context) ([]*model.SoftDeleteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []*model.SoftDeleteRecord
	for _, record := range r.records {
		clone := *record
		records = append(records, &clone)
	}
	return records, nil
}

func (r *fakeSoftDeleteRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

func (r *fakeSoftDeleteRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	for id, record := range r.records {
		// expires_at <= now，与 SQL 条件对齐
		if !record.ExpiresAt.After(now) {
			delete(r.records, id)
			purged++
		}
	}
	return purged, nil
}

type fakeRecentChangeRepo struct {
	mu      sync.Mutex
	seq     int
	changes []*model.RecentChange
}

func newFakeRecentChangeRepo() *fakeRecentChangeRepo {
	return &fakeRecentChangeRepo{}
}

func (r *fakeRecentChangeRepo) Create(_ context.Context, change *model.RecentChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if change.CreatedAt.IsZero() {
		change.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	}
	clone := *change
	r.changes = append(r.changes, &clone)
	return nil
}

func (r *fakeRecentChangeRepo) UpdateStatusByRef(_ context.Context, refID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, change := range r.changes {
		if change.RefID == refID {
			change.Status = status
		}
	}
	return nil
}

func (r *fakeRecentChangeRepo) List(_ context.Context, q repository.RecentChangeQuery) ([]*model.RecentChange, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.RecentChange
	for _, change := range r.changes {
		if q.ChangeType != "" && change.ChangeType != q.ChangeType {
			continue
		}
		if q.ContentType != "" && change.ContentType != q.ContentType {
			continue
		}
		if q.ChangedBy != "" && change.ChangedBy != q.ChangedBy {
			continue
		}
		if q.Status != "" && change.Status != q.Status {
			continue
		}
		if !q.Since.IsZero() && change.CreatedAt.Before(q.Since) {
			continue
		}
		clone := *change
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if q.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) seed(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.seed(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

type fakeExpertRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.ExpertProfile // by user_id
}

func newFakeExpertRepo() *fakeExpertRepo {
	return &fakeExpertRepo{profiles: map[string]*model.ExpertProfile{}}
}

func (r *fakeExpertRepo) Create(_ context.Context, profile *model.ExpertProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeExpertRepo) GetByUserID(_ context.Context, userID string) (*model.ExpertProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeExpertRepo) Update(_ context.Context, profile *model.ExpertProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeExpertRepo) ListByStatus(_ context.Context, status string) ([]*model.ExpertProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var profiles []*model.ExpertProfile
	for _, profile := range r.profiles {
		if profile.Status == status {
			clone := *profile
			profiles = append(profiles, &clone)
		}
	}
	return profiles, nil
}

type fakeWikiRepo struct {
	mu        sync.Mutex
	articles  map[string]*model.WikiArticle
	revisions map[string]*model.WikiRevision
	history   []*model.RollbackHistoryEntry
}

func newFakeWikiRepo() *fakeWikiRepo {
	return &fakeWikiRepo{
		articles:  map[string]*model.WikiArticle{},
		revisions: map[string]*model.WikiRevision{},
	}
}

func (r *fakeWikiRepo) CreateArticle(_ context.Context, article *model.WikiArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *article
	r.articles[article.ID] = &clone
	return nil
}

func (r *fakeWikiRepo) GetArticle(_ context.Context, id string) (*model.WikiArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	clone := *article
	return &clone, nil
}

func (r *fakeWikiRepo) GetRevision(_ context.Context, id string) (*model.WikiRevision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	revision, ok := r.revisions[id]
	if !ok {
		return nil, nil
	}
	clone := *revision
	return &clone, nil
}

func (r *fakeWikiRepo) ListRevisions(_ context.Context, articleID string) ([]*model.WikiRevision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var revisions []*model.WikiRevision
	for _, revision := range r.revisions {
		if revision.ArticleID == articleID {
			clone := *revision
			revisions = append(revisions, &clone)
		}
	}
	sort.Slice(revisions, func(i, j int) bool { return revisions[i].Rev < revisions[j].Rev })
	return revisions, nil
}

func (r *fakeWikiRepo) createRevisionLocked(revision *model.WikiRevision) {
	maxRev := 0
	for _, existing := range r.revisions {
		if existing.ArticleID == revision.ArticleID && existing.Rev > maxRev {
			maxRev = existing.Rev
		}
	}
	revision.Rev = maxRev + 1
	clone := *revision
	r.revisions[revision.ID] = &clone
	if article, ok := r.articles[revision.ArticleID]; ok {
		article.CurrentRevisionID = revision.ID
	}
}

func (r *fakeWikiRepo) CreateRevision(_ context.Context, revision *model.WikiRevision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createRevisionLocked(revision)
	return nil
}

func (r *fakeWikiRepo) CreateRevisionWithHistory(_ context.Context, revision *model.WikiRevision, entry *model.RollbackHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createRevisionLocked(revision)
	entryClone := *entry
	r.history = append(r.history, &entryClone)
	return nil
}

func (r *fakeWikiRepo) MarkStable(_ context.Context, articleID, revisionID, approvedBy string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if revision, ok := r.revisions[revisionID]; ok {
		revision.Status = consts.RevisionStatusStable
		revision.ApprovedBy = approvedBy
		t := approvedAt
		revision.ApprovedAt = &t
	}
	if article, ok := r.articles[articleID]; ok {
		article.StableRevisionID = revisionID
	}
	return nil
}

func (r *fakeWikiRepo) ListRollbackHistory(_ context.Context, contentID string) ([]*model.RollbackHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*model.RollbackHistoryEntry
	for _, entry := range r.history {
		if entry.ContentID == contentID {
			clone := *entry
			entries = append(entries, &clone)
		}
	}
	return entries, nil
}

type fakeEditRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.EditRequest
}

func newFakeEditRequestRepo() *fakeEditRequestRepo {
	return &fakeEditRequestRepo{requests: map[string]*model.EditRequest{}}
}

func (r *fakeEditRequestRepo) Create(_ context.Context, request *model.EditRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	clone := *request
	r.requests[request.ID] = &clone
	return nil
}

func (r *fakeEditRequestRepo) GetByID(_ context.Context, id string) (*model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	clone := *request
	return &clone, nil
}

func (r *fakeEditRequestRepo) Update(_ context.Context, request *model.EditRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *request
	r.requests[request.ID] = &clone
	return nil
}

func (r *fakeEditRequestRepo) CountByAuthorSince(_ context.Context, authorID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, request := range r.requests {
		if request.AuthorID == authorID && request.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeEditRequestRepo) ListByStatus(_ context.Context, status string) ([]*model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []*model.EditRequest
	for _, request := range r.requests {
		if request.Status == status {
			clone := *request
			requests = append(requests, &clone)
		}
	}
	return requests, nil
}

func (r *fakeEditRequestRepo) ListByAuthor(_ context.Context, authorID string) ([]*model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []*model.EditRequest
	for _, request := range r.requests {
		if request.AuthorID == authorID {
			clone := *request
			requests = append(requests, &clone)
		}
	}
	return requests, nil
}

type fakeCOIFlagRepo struct {
	mu       sync.Mutex
	flags    map[string]*model.COIFlag
	contents *fakeContentRepo // 冗余副本与权威表同调用内更新
}

func newFakeCOIFlagRepo(contents *fakeContentRepo) *fakeCOIFlagRepo {
	return &fakeCOIFlagRepo{flags: map[string]*model.COIFlag{}, contents: contents}
}

func (r *fakeCOIFlagRepo) syncContentLocked(contentType, contentID string) {
	var denorm []model.COIFlag
	for _, flag := range r.flags {
		if flag.ContentType == contentType && flag.ContentID == contentID {
			denorm = append(denorm, *flag)
		}
	}
	r.contents.mu.Lock()
	defer r.contents.mu.Unlock()
	if content, ok := r.contents.contents[contentKey(contentType, contentID)]; ok {
		content.COIFlags = denorm
	}
}

func (r *fakeCOIFlagRepo) Create(_ context.Context, flag *model.COIFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *flag
	r.flags[flag.ID] = &clone
	r.syncContentLocked(flag.ContentType, flag.ContentID)
	return nil
}

func (r *fakeCOIFlagRepo) GetByID(_ context.Context, id string) (*model.COIFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flag, ok := r.flags[id]
	if !ok {
		return nil, nil
	}
	clone := *flag
	return &clone, nil
}

func (r *fakeCOIFlagRepo) Update(_ context.Context, flag *model.COIFlag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *flag
	r.flags[flag.ID] = &clone
	r.syncContentLocked(flag.ContentType, flag.ContentID)
	return nil
}

func (r *fakeCOIFlagRepo) ListActive(_ context.Context) ([]*model.COIFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var flags []*model.COIFlag
	for _, flag := range r.flags {
		if flag.Status == consts.COIStatusActive {
			clone := *flag
			flags = append(flags, &clone)
		}
	}
	return flags, nil
}

func (r *fakeCOIFlagRepo) ListBySeverity(_ context.Context, severity string) ([]*model.COIFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var flags []*model.COIFlag
	for _, flag := range r.flags {
		if flag.Status == consts.COIStatusActive && flag.Severity == severity {
			clone := *flag
			flags = append(flags, &clone)
		}
	}
	return flags, nil
}

func (r *fakeCOIFlagRepo) ListByContent(_ context.Context, contentType, contentID string) ([]*model.COIFlag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var flags []*model.COIFlag
	for _, flag := range r.flags {
		if flag.ContentType == contentType && flag.ContentID == contentID {
			clone := *flag
			flags = append(flags, &clone)
		}
	}
	return flags, nil
}
