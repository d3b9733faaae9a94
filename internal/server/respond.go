package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/regexrail/pkg/errors"
	"github.com/matzehuels/regexrail/pkg/observability"
	"github.com/matzehuels/regexrail/pkg/parse"
)

type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Position  *int   `json:"position,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	code := errors.GetCode(err)
	switch {
	case code.IsInvalid():
		return http.StatusBadRequest
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := StatusCode(err)
	observability.HTTP().OnError(ctx, r.Method, routePattern(r), err)

	body := errorBody{
		Error:     string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(ctx),
	}
	if body.Error == "" {
		body.Error = string(errors.ErrCodeInternal)
	}
	var perr *parse.Error
	if stderrors.As(err, &perr) {
		pos := perr.Pos
		body.Position = &pos
		body.Message = perr.Error()
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", body.RequestID)
		if body.Error == string(errors.ErrCodeInternal) {
			body.Message = "internal error"
		}
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err, "request_id", body.RequestID)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
