package util

import (
	"github.com/google/uuid"
)

// GenerateID 生成带业务前缀的实体 ID，如 mq_xxx / sdr_xxx
func GenerateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
