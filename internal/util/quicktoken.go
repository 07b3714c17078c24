package util

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// QuickActionClaims binds a booking to a target status for one-click admin
// links. The signature is the only integrity guarantee; tokens deliberately
// carry no expiry so dashboard and email links keep working.
type QuickActionClaims struct {
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status"`
	jwt.RegisteredClaims
}

var ErrQuickActionToken = errors.New("invalid quick-action token")

type QuickActionSigner struct {
	secret []byte
}

func NewQuickActionSigner(secret string) *QuickActionSigner {
	return &QuickActionSigner{secret: []byte(secret)}
}

func (s *QuickActionSigner) Sign(bookingID uuid.UUID, status string) (string, error) {
	claims := QuickActionClaims{
		BookingID: bookingID,
		Status:    status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: bookingID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *QuickActionSigner) Verify(tokenString string) (*QuickActionClaims, error) {
	claims := &QuickActionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrQuickActionToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrQuickActionToken
	}
	if claims.BookingID == uuid.Nil || claims.Status == "" {
		return nil, ErrQuickActionToken
	}
	return claims, nil
}
