package jwt

import (
	"net/http"
	"strings"
)

// Extractor pulls a raw token from a request. It returns ErrMissingToken when
// the request carries none in the place it inspects.
type Extractor func(r *http.Request) (string, error)

// BearerExtractor reads "Authorization: Bearer <token>".
func BearerExtractor(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// QueryExtractor reads the token from the named query parameter.
func QueryExtractor(name string) Extractor {
	return func(r *http.Request) (string, error) {
		if token := r.URL.Query().Get(name); token != "" {
			return token, nil
		}
		return "", ErrMissingToken
	}
}

// CookieExtractor reads the token from the named cookie.
func CookieExtractor(name string) Extractor {
	return func(r *http.Request) (string, error) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", ErrMissingToken
		}
		return c.Value, nil
	}
}

// ChainExtractors tries each extractor in order and returns the first token found.
func ChainExtractors(extractors ...Extractor) Extractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			if token, err := ex(r); err == nil {
				return token, nil
			}
		}
		return "", ErrMissingToken
	}
}
