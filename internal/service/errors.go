package service

import (
	"errors"
	"fmt"
)

var (
	ErrContentNotFound       = errors.New("content not found")
	ErrQueueItemNotFound     = errors.New("queue item not found")
	ErrQueueItemResolved     = errors.New("queue item already resolved")
	ErrJustificationRequired = errors.New("Justification is required")
	ErrInvalidAction         = errors.New("invalid moderation action")
	ErrRecordNotFound        = errors.New("soft-delete record not found")
	ErrRecordExpired         = errors.New("soft-delete record already expired")
	ErrExpertNotFound        = errors.New("expert profile not found")
	ErrExpertAlreadyApplied  = errors.New("expert application already exists")
	ErrExpertNotPending      = errors.New("expert application is not pending")
	ErrNotVerifiedExpert     = errors.New("Only verified experts can publish stable health revisions")
	ErrArticleNotFound       = errors.New("article not found")
	ErrRevisionNotFound      = errors.New("revision not found")
	ErrRevisionNotInArticle  = errors.New("revision does not belong to article")
	ErrEditRequestNotFound   = errors.New("edit request not found")
	ErrEditRequestProcessed  = errors.New("edit request already reviewed")
	ErrFlagNotFound          = errors.New("conflict-of-interest flag not found")
	ErrFlagResolved          = errors.New("conflict-of-interest flag already resolved")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrUserNotFound          = errors.New("user not found")
	ErrLockNotAcquired       = errors.New("failed to acquire lock")
)

// ErrorMap 业务错误码映射
var ErrorMap = map[error]int{
	ErrContentNotFound:       404,
	ErrQueueItemNotFound:     404,
	ErrQueueItemResolved:     409,
	ErrJustificationRequired: 400,
	ErrInvalidAction:         400,
	ErrRecordNotFound:        404,
	ErrRecordExpired:         409,
	ErrExpertNotFound:        404,
	ErrExpertAlreadyApplied:  409,
	ErrExpertNotPending:      409,
	ErrNotVerifiedExpert:     403,
	ErrArticleNotFound:       404,
	ErrRevisionNotFound:      404,
	ErrRevisionNotInArticle:  400,
	ErrEditRequestNotFound:   404,
	ErrEditRequestProcessed:  409,
	ErrFlagNotFound:          404,
	ErrFlagResolved:          409,
	ErrPermissionDenied:      403,
	ErrUserNotFound:          404,
	ErrLockNotAcquired:       500,
}

// RateLimitedError 限流错误，带窗口与配额信息
type RateLimitedError struct {
	Window string
	Limit  int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("Rate limit exceeded: %d requests per %s maximum", e.Limit, e.Window)
}
