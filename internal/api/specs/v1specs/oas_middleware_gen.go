// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"github.com/ogen-go/ogen/middleware"
)

// Middleware is middleware type.
type Middleware = middleware.Middleware
