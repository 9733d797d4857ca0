package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Untagged fields are never filled from the query string, and parameters
// that are absent leave the field untouched.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindTagged(v, "query", func(name string) (string, bool) {
			if !q.Has(name) {
				return "", false
			}
			return q.Get(name), true
		}, ErrFailedToParseQuery)
	}
}
