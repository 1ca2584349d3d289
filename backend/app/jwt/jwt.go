package jwtutil

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is what the session cookie carries. The session id is the
// revocable part; the token only proves the cookie was issued by us.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"uid"`
	jwt.RegisteredClaims
}

type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (s *Signer) Sign(sessionID string, userID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID, UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: s.Issuer, IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL))},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.SessionID == "" {
			return nil, errors.New("token without session id")
		}
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
