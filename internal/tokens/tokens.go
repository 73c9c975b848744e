package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

const (
	Validity     = 4 * time.Hour
	MaxClockSkew = 60 * time.Second
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Settings struct {
	Secret    []byte
	Issuer    string
	Audience  string
	ClockSkew time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer mints and validates HS512 bearer tokens. It holds no per-token state.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	skew     time.Duration
	now      func() time.Time
}

func NewIssuer(s Settings) (*Issuer, error) {
	if err := apperr.RequireNonEmpty(
		"JWT_SECRET", string(s.Secret),
		"JWT_ISSUER", s.Issuer,
		"JWT_AUDIENCE", s.Audience,
	); err != nil {
		return nil, err
	}

	skew := s.ClockSkew
	if skew < 0 {
		skew = 0
	}
	if skew > MaxClockSkew {
		skew = MaxClockSkew
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}

	return &Issuer{
		secret:   s.Secret,
		issuer:   s.Issuer,
		audience: s.Audience,
		skew:     skew,
		now:      now,
	}, nil
}

// Configured reports whether the issuer can sign tokens. A nil or zero Issuer cannot.
func (i *Issuer) Configured() bool {
	return i != nil && len(i.secret) > 0 && i.issuer != "" && i.audience != ""
}

func (i *Issuer) Issue(subject, role string) (Token, error) {
	if !i.Configured() {
		return Token{}, &apperr.ConfigurationError{Missing: []string{"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE"}}
	}

	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(Validity)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("%w: sign token: %v", apperr.ErrInternal, err)
	}

	return Token{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Validate accepts a token only if it is HS512-signed with this issuer's secret,
// carries the configured issuer and audience, and has not expired.
func (i *Issuer) Validate(tokenStr string) (*Claims, error) {
	if !i.Configured() {
		return nil, &apperr.ConfigurationError{Missing: []string{"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE"}}
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(i.skew),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	}

	return &claims, nil
}
