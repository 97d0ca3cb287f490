package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failure kinds. Validity is solely signature + expiry;
// there is no revocation list.
var (
	ErrTokenExpired = errors.New("jwt: token expired")
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Claims includes the standard JWT claims plus the session identity.
// Active is a snapshot taken at issue time and is informational only:
// the authorizer re-checks the account against the store on every call.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Active   bool   `json:"active"`
}

// Options configure a Codec. Secret and Algorithm come from process
// configuration and are read-only after construction.
type Options struct {
	Secret    string
	Algorithm string // HS256, HS384, HS512
	Issuer    string
	TTL       time.Duration
}

// Codec signs and verifies stateless session tokens.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
}

// New builds a Codec. Fails only on programmer error: empty secret or an
// unknown signing algorithm.
func New(opts Options) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("jwt: empty secret")
	}
	var method jwt.SigningMethod
	switch opts.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", opts.Algorithm)
	}
	return &Codec{
		secret: []byte(opts.Secret),
		method: method,
		issuer: opts.Issuer,
		ttl:    opts.TTL,
	}, nil
}

// Issue signs a token for the given identity, expiring at now + TTL.
// The password hash never enters the claims.
func (c *Codec) Issue(username, fullname string, active bool, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Username: username,
		Fullname: fullname,
		Active:   active,
	}
	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry against now. Returns
// ErrTokenExpired past the expiry and ErrTokenInvalid for a bad
// signature, a malformed token or an unexpected signing method.
func (c *Codec) Verify(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
