package selfserve

import (
	"fmt"
	"mime"
	"strings"

	"github.com/GenerateNU/selfserve/internal/json"
)

// BodyKind tags how a successful response body is decoded.
type BodyKind int

const (
	// KindText is a raw body returned unchanged. It is used for text/plain and
	// for missing or unrecognized content types.
	KindText BodyKind = iota
	// KindJSON is a body decoded as JSON.
	KindJSON
)

func (k BodyKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	default:
		return "text"
	}
}

// kindOf picks the decode tag from a Content-Type header value.
func kindOf(contentType string) BodyKind {
	if contentType == "" {
		return KindText
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return KindJSON
	}
	return KindText
}

// decodeBody stores body into out according to kind. Text lands unchanged in
// *string, *[]byte and *any targets; other targets get a JSON decode
// attempt. An empty body leaves out untouched.
func decodeBody(kind BodyKind, body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}

	if kind == KindJSON {
		if dst, ok := out.(*[]byte); ok {
			*dst = append((*dst)[:0], body...)
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding json response into %T: %w", out, err)
		}
		return nil
	}

	switch dst := out.(type) {
	case *string:
		*dst = string(body)
		return nil
	case *[]byte:
		*dst = append((*dst)[:0], body...)
		return nil
	case *any:
		*dst = string(body)
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding text response into %T: %w", out, err)
	}
	return nil
}
