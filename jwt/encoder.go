package jwt

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/bobinette/deptlib/errors"
)

const (
	issuer          = "deptlib"
	defaultLifetime = 7 * 24 * time.Hour
)

type EncodeDecoder struct {
	key      []byte
	lifetime time.Duration
}

// Claims are the claims carried by a deptlib token.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// NewEncodeDecoder returns an encoder signing HS256 tokens with key. A zero
// lifetime defaults to a week.
func NewEncodeDecoder(key []byte, lifetime time.Duration) *EncodeDecoder {
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}

	return &EncodeDecoder{
		key:      key,
		lifetime: lifetime,
	}
}

func (e *EncodeDecoder) Encode(userID int, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(e.lifetime).Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (Claims, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, e.keyFunc)
	if err != nil {
		return Claims{}, errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return *claims, nil
	}

	return Claims{}, errors.New("could not get claims", errors.Unauthorized())
}

func (e *EncodeDecoder) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return e.key, nil
}
