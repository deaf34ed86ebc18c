package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookiePrefix = "billed_"

var ErrInvalidItem = errors.New("invalid or tampered session item")

// Signer signs session items so the browser can hold them without being
// able to forge them.
type Signer struct {
	secretKey []byte
}

func NewSigner(secretKey string) *Signer {
	return &Signer{secretKey: []byte(secretKey)}
}

type itemClaims struct {
	Key   string `json:"k"`
	Value string `json:"v"`
	jwt.RegisteredClaims
}

func (s *Signer) sign(key, value string) (string, error) {
	claims := &itemClaims{
		Key:   key,
		Value: value,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session item: %w", err)
	}
	return token, nil
}

func (s *Signer) verify(key, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&itemClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	claims, ok := parsed.Claims.(*itemClaims)
	if !ok || !parsed.Valid || claims.Key != key {
		return "", ErrInvalidItem
	}

	return claims.Value, nil
}

var _ Store = (*CookieStore)(nil)

// CookieStore keeps each item in its own signed cookie. It is bound to one
// request/response pair; writes are visible to later reads on the same
// instance.
type CookieStore struct {
	signer *Signer
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	// pending shadows the request cookies after a write; nil marks a removal.
	pending map[string]*string
}

func NewCookieStore(signer *Signer, w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		signer:  signer,
		w:       w,
		r:       r,
		secure:  secure,
		pending: map[string]*string{},
	}
}

func (c *CookieStore) GetItem(key string) (string, bool) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	cookie, err := c.r.Cookie(cookiePrefix + key)
	if err != nil {
		return "", false
	}

	value, err := c.signer.verify(key, cookie.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (c *CookieStore) SetItem(key, value string) error {
	token, err := c.signer.sign(key, value)
	if err != nil {
		return err
	}

	http.SetCookie(c.w, &http.Cookie{
		Name:     cookiePrefix + key,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.pending[key] = &value

	return nil
}

// Clear expires every session cookie the request carried, plus anything
// written through this store.
func (c *CookieStore) Clear() {
	keys := map[string]struct{}{}
	for _, cookie := range c.r.Cookies() {
		if key, ok := strings.CutPrefix(cookie.Name, cookiePrefix); ok {
			keys[key] = struct{}{}
		}
	}
	for key := range c.pending {
		keys[key] = struct{}{}
	}

	for key := range keys {
		http.SetCookie(c.w, &http.Cookie{
			Name:     cookiePrefix + key,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.pending[key] = nil
	}
}
