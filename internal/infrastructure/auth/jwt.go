package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// ErrInvalidToken is returned for any token that fails parsing or validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload issued on login.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 tokens with a single process-wide secret.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret, issuer string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (j *JWT) Issue(user *domain.User) (string, error) {
	now := j.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Verify parses token and returns the identity it carries. Tokens without an
// expiry, from another issuer or signed with anything but HS256 are rejected.
func (j *JWT) Verify(token string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return domain.Identity{}, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
