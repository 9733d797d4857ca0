package binder

import "net/http"

// Path binds router path parameters into fields tagged `path:"name"`.
// The extractor is usually chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindTagged(v, "path", func(name string) (string, bool) {
			val := extractor(r, name)
			return val, val != ""
		}, ErrFailedToParsePath)
	}
}
