// Package gen holds the endpoint functions generated from the backend's
// OpenAPI document. Every function issues its call through a
// selfserve.Mutator, so generated calls share the hand-written client's
// headers, errors and decoding. endpoints_gen.go is generator output.
package gen
