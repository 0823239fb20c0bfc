package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleMiner    = "miner"
	RoleOperator = "operator"
)

var jwtSecret []byte

func InitJWT(secret string) {
	if secret == "" {
		panic("jwt secret is empty")
	}
	jwtSecret = []byte(secret)
}

// GenerateToken mints a signed token carrying the session id and role.
func GenerateToken(sessionID, role string) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        now,
		"nbf":        now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates a token and returns its session id and role.
func ParseToken(tokenString string) (sessionID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return "", "", errors.New("token expired")
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return "", "", errors.New("token not valid yet")
	}

	sessionID, ok = claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", errors.New("session_id not found")
	}
	role, _ = claims["role"].(string)
	if role == "" {
		role = RoleMiner
	}

	return sessionID, role, nil
}
