package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Palisade"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims Token 中携带的业务身份信息
type UserClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
