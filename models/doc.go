// Package models holds the request and response bodies exchanged with the
// selfserve backend. Optional fields are pointers so an absent value and a
// zero value stay distinguishable on the wire.
package models
