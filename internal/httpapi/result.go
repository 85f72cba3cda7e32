package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// result is a pending HTTP response: a status code, a JSON body, and an
// internal log message. Ported from server/result/result.go's
// Result/writeResponse pattern, trimmed to this package's needs.
type result struct {
	status  int
	body    interface{}
	logMsg  string
	logArgs []interface{}
}

func ok(body interface{}, logMsg string, args ...interface{}) result {
	return result{status: http.StatusOK, body: body, logMsg: logMsg, logArgs: args}
}

func created(body interface{}, logMsg string, args ...interface{}) result {
	return result{status: http.StatusCreated, body: body, logMsg: logMsg, logArgs: args}
}

func badRequest(msg string, args ...interface{}) result {
	return result{status: http.StatusBadRequest, body: errorBody(msg, args...), logMsg: "bad request: " + msg, logArgs: args}
}

func notFound(msg string, args ...interface{}) result {
	return result{status: http.StatusNotFound, body: errorBody(msg, args...), logMsg: "not found: " + msg, logArgs: args}
}

func conflict(msg string, args ...interface{}) result {
	return result{status: http.StatusConflict, body: errorBody(msg, args...), logMsg: "conflict: " + msg, logArgs: args}
}

func unauthorized(msg string, args ...interface{}) result {
	return result{status: http.StatusUnauthorized, body: errorBody(msg, args...), logMsg: "unauthorized: " + msg, logArgs: args}
}

func internalError(err error) result {
	return result{status: http.StatusInternalServerError, body: errorBody("internal error"), logMsg: "internal error: %s", logArgs: []interface{}{err}}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string, args ...interface{}) errorResponse {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return errorResponse{Error: msg}
}

func (r result) writeTo(w http.ResponseWriter, logger *log.Logger) {
	logger.Printf(r.logMsg, r.logArgs...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	if r.body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(r.body); err != nil {
		logger.Printf("encoding response body: %s", err)
	}
}
