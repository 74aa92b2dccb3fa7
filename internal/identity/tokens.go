package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/everestpress/printshop-api/internal/httperr"
)

const resetPurpose = "password_reset"

// TokenIssuer signs and verifies the two token shapes this API uses: bearer
// session tokens and purpose-tagged password-reset tokens. Verification is
// signature + expiry only; there is no revocation list for session tokens.
type TokenIssuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
}

func NewTokenIssuer(secret string, ttl, resetTTL time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, resetTTL: resetTTL}
}

func (t *TokenIssuer) IssueAccess(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyAccess returns the subject user id for a valid bearer token.
func (t *TokenIssuer) VerifyAccess(token string) (string, error) {
	claims, err := t.parse(token)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		// A reset token is not a session credential.
		return "", httperr.Unauthenticated("invalid_token", "Invalid or expired token.")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", httperr.Unauthenticated("invalid_token", "Invalid or expired token.")
	}
	return sub, nil
}

func (t *TokenIssuer) IssueReset(userID string) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"sub":     userID,
		"jti":     jti,
		"purpose": resetPurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(t.resetTTL).Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return token, jti, err
}

// VerifyReset validates a reset token and reports how much of its life
// remains, so a used-token marker can expire alongside it.
func (t *TokenIssuer) VerifyReset(token string) (userID, jti string, remaining time.Duration, err error) {
	claims, err := t.parse(token)
	if err != nil {
		return "", "", 0, httperr.Validation("invalid_token", "Invalid or expired reset token.")
	}

	purpose, _ := claims["purpose"].(string)
	sub, _ := claims["sub"].(string)
	jti, _ = claims["jti"].(string)
	if purpose != resetPurpose || sub == "" || jti == "" {
		return "", "", 0, httperr.Validation("invalid_token", "Invalid or expired reset token.")
	}

	if exp, ok := claims["exp"].(float64); ok {
		remaining = time.Until(time.Unix(int64(exp), 0))
	}
	return sub, jti, remaining, nil
}

func (t *TokenIssuer) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, httperr.Unauthenticated("invalid_token", "Invalid or expired token.")
	}
	return claims, nil
}
