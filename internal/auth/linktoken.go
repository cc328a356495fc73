package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// LinkSigner issues and validates tokens for the emailed update links. With
// no secret configured the update form stays open, matching the original
// deployment.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewLinkSigner builds a signer. An empty secret disables signing.
func NewLinkSigner(secret string, ttlMinutes int) *LinkSigner {
	if ttlMinutes <= 0 {
		ttlMinutes = 10080
	}
	return &LinkSigner{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Enabled reports whether update links are signed and enforced.
func (ls *LinkSigner) Enabled() bool {
	return ls != nil && len(ls.secret) > 0
}

// LinkClaims describes the JWT payload carried in update links.
type LinkClaims struct {
	TicketNumber string `json:"ticket_number"`
	jwt.RegisteredClaims
}

// IssueUpdateToken signs a token bound to one ticket number.
func (ls *LinkSigner) IssueUpdateToken(ticketNumber string) (string, error) {
	claims := &LinkClaims{
		TicketNumber: ticketNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ticketNumber,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ls.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ls.secret)
}

// VerifyUpdateToken validates the token and its ticket binding.
func (ls *LinkSigner) VerifyUpdateToken(tokenStr, ticketNumber string) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, &LinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return ls.secret, nil
	})
	if err != nil {
		return err
	}
	claims, ok := parsed.Claims.(*LinkClaims)
	if !ok || !parsed.Valid {
		return errors.New("invalid token claims")
	}
	if claims.TicketNumber != ticketNumber {
		return errors.New("token issued for a different ticket")
	}
	return nil
}
