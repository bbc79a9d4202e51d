package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devevents/internal/domain"
)

// ErrInvalidTicket is returned by Verify for any token that fails parsing, signature or
// expiry checks.
var ErrInvalidTicket = errors.New("invalid ticket")

type jwtClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"event_id"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns a TicketIssuer that signs tickets with HS256 using secret.
// Tickets expire ttl after issue.
func NewJWTIssuer(secret string, ttl time.Duration) domain.TicketIssuer {
	return &jwtIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *jwtIssuer) Issue(b *domain.Booking) (string, error) {
	if b == nil || b.ID == "" {
		return "", fmt.Errorf("ticket requires a stored booking")
	}
	now := i.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   b.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		EventID: b.EventID,
		Slug:    b.Slug,
		Email:   b.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign ticket: %w", err)
	}
	return tokenString, nil
}

func (i *jwtIssuer) Verify(token string) (*domain.Ticket, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	return &domain.Ticket{
		BookingID: claims.Subject,
		EventID:   claims.EventID,
		Slug:      claims.Slug,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
