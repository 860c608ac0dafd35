// Package selfserve is the shared typed API client used by the selfserve
// hotel-operations front ends. It owns the request pipeline every call goes
// through:
//
//   - Settings holds the base URL and AuthProvider, set once at startup
//   - Executor builds the URL and query string, injects the bearer token,
//     serializes the body and decodes the response by content type
//   - Client offers Get/Post/Put/Patch/Delete for hand-written services
//   - Mutator is the seam generated endpoint code calls instead of its own
//     transport, so both share headers, error wrapping and decoding
//   - APIError is the single failure type; Status 0 means no response
//
// Typical usage:
//
//	settings := selfserve.NewSettings()
//	settings.Set(selfserve.Config{
//	    BaseURL: "http://localhost:8080",
//	    Auth:    selfserve.TokenFunc(session.Token),
//	})
//	client := selfserve.New(settings)
//
//	var greeting string
//	_, err := client.Get(ctx, "/api/v1/hello/Alice", nil, &greeting)
//
// The pipeline never retries, caches or logs on its own. Retry and caching
// belong to the caller; see package query. Debug output is written only when
// a Logger is supplied with WithLogger and WithDebug.
package selfserve
