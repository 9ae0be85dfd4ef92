package consts

const (
	QueueIngestLockKey  = "moderation:queue:ingest:"  // + contentType:contentId
	QueueCountsCacheKey = "moderation:queue:counts:"  // + contentType
	TokenBlacklistKey   = "auth:token:blacklist:"     // + signature
)
