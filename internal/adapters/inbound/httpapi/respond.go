package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/yaml"
)

// respond encodes data as YAML when the client accepts it and as JSON otherwise.
// The body is encoded before any header is written so that an encoding failure
// never produces a partial response.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	contentType := negotiate(r.Header.Get("Accept"))

	buf := &bytes.Buffer{}

	var err error

	switch contentType {
	case contentTypeYAML:
		enc := yaml.NewEncoder(buf)
		err = enc.Encode(data)

		if closeErr := enc.Close(); err == nil {
			err = closeErr
		}
	default:
		err = json.NewEncoder(buf).Encode(data)
	}

	if err != nil {
		h.logger.ErrorContext(r.Context(), "response encoding failed", "contentType", contentType, "reason", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(r.Context(), "response write failed", "reason", err)
	}
}

func negotiate(accept string) string {
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")

		switch strings.ToLower(strings.TrimSpace(mediaType)) {
		case contentTypeJSON, "*/*":
			return contentTypeJSON
		case contentTypeYAML, "application/x-yaml", "text/yaml":
			return contentTypeYAML
		}
	}

	return contentTypeJSON
}
