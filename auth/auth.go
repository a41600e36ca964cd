package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/fibertelecom/httpx"
)

// The shop runs behind one shared credential, so a session only records who
// logged in and when. The cookie value is "<subject>.<issued>.<sig>".

type ctxKey string

const (
	sessionCookieName = "session"
	subjectCtxKey     = ctxKey("subject")

	// SessionTTL bounds how long a login stays valid.
	SessionTTL = 12 * time.Hour
)

var (
	secretMu sync.RWMutex
	secret   string
)

// SetSecret overrides the signing secret (normally taken from config).
func SetSecret(s string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	secret = s
}

// Secret returns the configured secret, SESSION_SECRET, or a default dev value.
func Secret() string {
	secretMu.RLock()
	s := secret
	secretMu.RUnlock()
	if s != "" {
		return s
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie for subject, issued at now.
func CreateSession(w http.ResponseWriter, subject string, now time.Time) {
	enc := base64.RawURLEncoding.EncodeToString([]byte(subject))
	payload := enc + "." + strconv.FormatInt(now.Unix(), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(SessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie against now and returns its subject.
func ParseSession(r *http.Request, now time.Time) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 3 {
		return "", false
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(sign(payload))) {
		return "", false
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", false
	}
	if now.Sub(time.Unix(issued, 0)) > SessionTTL {
		return "", false
	}
	subject, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(subject) == 0 {
		return "", false
	}
	return string(subject), true
}

// WithSubject stores the logged-in subject in context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

// SubjectFromContext extracts the logged-in subject.
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectCtxKey).(string)
	return v, ok && v != ""
}

// Middleware attaches the session subject to the request context if present.
// now is injected so callers can share the application clock.
func Middleware(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subject, ok := ParseSession(r, now()); ok {
				r = r.WithContext(WithSubject(r.Context(), subject))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a session with 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SubjectFromContext(r.Context()); !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
