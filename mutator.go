package selfserve

import (
	"context"
)

// Mutator is the call contract generated endpoint functions are emitted
// against: one Request in, the decoded payload written to out, one settled
// result back. (*Client).Mutator and (*Executor).Do both satisfy it.
type Mutator func(ctx context.Context, req Request, out any) (*Response, error)

// Result is a decoded payload together with its response envelope.
type Result[T any] struct {
	Data T
	*Response
}

// Call runs req through m and decodes the payload as T.
//
// For text responses T is typically string; with T = any a text body arrives
// as a string and a JSON body as the generic decoded value.
func Call[T any](ctx context.Context, m Mutator, req Request) (*Result[T], error) {
	if m == nil {
		return nil, &ConfigurationError{Message: "nil mutator", Cause: ErrNotConfigured}
	}
	var data T
	resp, err := m(ctx, req, &data)
	if err != nil {
		return nil, err
	}
	return &Result[T]{Data: data, Response: resp}, nil
}

// Fetch is Call without the envelope.
func Fetch[T any](ctx context.Context, m Mutator, req Request) (T, error) {
	res, err := Call[T](ctx, m, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return res.Data, nil
}
