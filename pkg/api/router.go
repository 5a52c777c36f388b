package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"tabboard/pkg/board"
)

// API exposes the board service over HTTP.
type API struct {
	svc *board.Service
}

// New returns an API over the given service.
func New(svc *board.Service) *API {
	return &API{svc: svc}
}

// Router builds the /v1 route table.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()

	// whole-document persistence, the raw surface the board client uses
	v1.HandleFunc("/document", a.getDocument).Methods(http.MethodGet)
	v1.HandleFunc("/document", a.putDocument).Methods(http.MethodPut)

	// message addressing layer
	v1.HandleFunc("/messages", a.listMessages).Methods(http.MethodGet)
	v1.HandleFunc("/messages", a.createMessage).Methods(http.MethodPost)
	v1.HandleFunc("/messages/{id}", a.getMessage).Methods(http.MethodGet)
	v1.HandleFunc("/messages/{id}", a.updateMessage).Methods(http.MethodPut)
	v1.HandleFunc("/messages/{id}", a.deleteMessage).Methods(http.MethodDelete)

	v1.HandleFunc("/categories", a.listCategories).Methods(http.MethodGet)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the board error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, board.ErrInvalidID),
		errors.Is(err, board.ErrMissingField),
		errors.Is(err, board.ErrTooLarge):
		status = http.StatusBadRequest
	case errors.Is(err, board.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
