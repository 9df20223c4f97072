package httpx

import (
	"net/http"
	"strings"
)

// maxUploadBytes caps multipart bodies; larger uploads are rejected before reaching the backend.
const maxUploadBytes = 32 << 20

// formValue returns the trimmed POST value for key.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// rawFormValue returns the POST value for key without trimming (textarea content).
func rawFormValue(r *http.Request, key string) string {
	return r.PostFormValue(key)
}

// queryValue returns the trimmed query value for key.
func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
