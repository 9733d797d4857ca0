// Package binder decodes HTTP requests into request structs.
//
// JSON reads the body strictly (unknown fields rejected, 1 MB cap). Query and
// Path fill fields tagged `query:"name"` and `path:"name"`. Binders are meant
// to be chained by handler.Wrap; each one only touches what it finds, so a
// struct can combine sources:
//
//	type forgotRequest struct {
//		Email string `json:"email" query:"email"`
//	}
package binder
