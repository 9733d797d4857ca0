// Package validate wraps github.com/go-playground/validator/v10 for request
// structs. Failures come back as a ValidationError keyed by the json field
// name. The custom "password" tag enforces the account password policy.
package validate
