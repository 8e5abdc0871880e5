package web

import (
	"mime"
	"net/http"
)

// ContentTypeJSON rejects requests carrying a body whose Content-Type is not
// application/json with a 415 error payload.
func ContentTypeJSON() Middleware {
	return func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength != 0 && !isJSON(r.Header.Get("Content-Type")) {
				EncodeError(w, r, UnsupportedMediaTypeErrorf("content type %q is not application/json", r.Header.Get("Content-Type")))
				return
			}
			handler(w, r)
		}
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
