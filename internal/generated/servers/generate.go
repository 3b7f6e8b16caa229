// Package servers holds the echo bindings generated from api/openapi.yml.
package servers

//go:generate oapi-codegen --config=../../../api/oapi-codegen.yml ../../../api/openapi.yml
