// Package specs holds the OpenAPI description of the HTTP API. The v1specs
// server and client are generated from it.
package specs

//go:generate go run github.com/ogen-go/ogen/cmd/ogen --target v1specs --package v1specs --clean v1.yaml
