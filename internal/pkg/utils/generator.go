package utils

import (
	"errors"
	"fmt"
	"roombook-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrSessionClaimMissing = errors.New("session_id claim missing")
	ErrSessionTokenExpired = errors.New("session token expired")
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func GenerateSessionJWT(sessionID, secret string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseSessionJWT verifies the signature and checks exp against clock, so
// tokens expire on the same time source as the sessions they carry.
func ParseSessionJWT(tokenString, secret string, clock Clock) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrSessionClaimMissing
	}
	if !claims.VerifyExpiresAt(clock.Now().Unix(), true) {
		return "", ErrSessionTokenExpired
	}
	if sessionID, ok := claims["session_id"].(string); ok && sessionID != "" {
		return sessionID, nil
	}

	return "", ErrSessionClaimMissing
}

func GenerateScheduleExportName(date string, now time.Time) string {
	return fmt.Sprintf(constvars.MinioScheduleExportPathFmt, date, now.Format("20060102_150405.000000000"))
}
