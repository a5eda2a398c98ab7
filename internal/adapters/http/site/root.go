// Package site serves the page shell that hosts the charts and forwards UI
// events to the API.
package site

import (
	"context"
	"errors"
	"net/http"
)

// ErrServe is returned when the embedded page cannot be read.
var ErrServe = errors.New("page shell serve failed")

// Register attaches the page shell route to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", NewRootHandler())
}

// RootHandler serves the page shell.
type RootHandler struct {
	page []byte
	err  error
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	page, err := Page()
	return &RootHandler{page: page, err: err}
}

// ServeHTTP handles GET / requests.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}
