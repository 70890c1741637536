package tabapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse is the JSON body returned for any non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is an endpoint's response, not yet written to the wire. Splitting
// "what happened" from "write it out" lets an endpoint build a Result,
// inspect it in tests, and lets the caller decide when (and whether) to
// log it.
type Result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	resp interface{}
}

// OK returns a Result containing an HTTP-200 and the given response body.
func OK(respObj interface{}, internalMsg string) Result {
	return Result{Status: http.StatusOK, resp: respObj, InternalMsg: internalMsg}
}

// Created returns a Result containing an HTTP-201 and the given response body.
func Created(respObj interface{}, internalMsg string) Result {
	return Result{Status: http.StatusCreated, resp: respObj, InternalMsg: internalMsg}
}

// BadRequest returns a Result containing an HTTP-400 with userMsg as the
// client-facing error text.
func BadRequest(userMsg, internalMsg string) Result {
	return errResult(http.StatusBadRequest, userMsg, internalMsg)
}

// Unauthorized returns a Result containing an HTTP-401 with userMsg as the
// client-facing error text.
func Unauthorized(userMsg, internalMsg string) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return errResult(http.StatusUnauthorized, userMsg, internalMsg)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg string) Result {
	return errResult(http.StatusNotFound, "The requested resource was not found", internalMsg)
}

// InternalServerError returns a Result containing an HTTP-500. internalMsg
// is logged but never shown to the client.
func InternalServerError(internalMsg string) Result {
	return errResult(http.StatusInternalServerError, "An internal server error occurred", internalMsg)
}

func errResult(status int, userMsg, internalMsg string) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		InternalMsg: internalMsg,
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// WriteResponse marshals and writes r to w. Panics if r.Status was never
// set; an endpoint that returns a zero Result is a programming error.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	body, err := json.Marshal(r.resp)
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.Status)
	w.Write(body)
}

// Log writes a one-line access log entry for the request/result pair.
func (r Result) Log(req *http.Request) {
	level := "INFO "
	if r.IsErr {
		level = "ERROR"
	}

	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, r.Status, r.InternalMsg)
}
