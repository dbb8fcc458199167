package api

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashCookieName = "blogly_flash"
	flashTTL        = 5 * time.Minute
)

type flashClaims struct {
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// flashStore keeps one-shot messages in an HMAC signed cookie so they survive a redirect.
type flashStore struct {
	secret []byte
	ttl    time.Duration
}

func newFlashStore(secret string) flashStore {
	return flashStore{secret: []byte(secret), ttl: flashTTL}
}

// Set stores message for the next rendered page.
func (f flashStore) Set(w http.ResponseWriter, message string) error {
	now := time.Now()
	claims := flashClaims{
		Message: message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(f.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending message and clears the cookie. Tampered or expired
// cookies yield an empty message.
func (f flashStore) Pop(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var claims flashClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ""
	}
	return claims.Message
}

// middleware moves the pending message into the request context of page loads.
func (f flashStore) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		if message := f.Pop(w, r); message != "" {
			r = r.WithContext(ctxWithFlash(r.Context(), message))
		}
		next.ServeHTTP(w, r)
	})
}
