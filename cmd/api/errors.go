package main

import (
	"errors"
	"net/http"

	"paybridge/internal/payments"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, err.Error())
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusForbidden, err.Error())
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, err.Error())
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// gatewayErrorResponse maps a payments error onto the outgoing response: the
// upstream body passes through verbatim when one exists, a status attached to
// the error wins next, and anything else becomes a 500.
func (app *application) gatewayErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *payments.Error
	if !errors.As(err, &gerr) {
		app.internalServerError(w, r, err)
		return
	}

	status := gerr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	app.logger.Warnw("gateway call failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", gerr.Message)

	if len(gerr.Body) > 0 {
		writeRawJSON(w, status, gerr.Body)
		return
	}
	writeJSONError(w, status, gerr.Message)
}
