package api

import (
	"encoding/json"
	"net/http"

	"tabboard/pkg/models"
)

func (a *API) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := a.svc.Document(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (a *API) putDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Error string `json:"error"`
		}{Error: "invalid json"})
		return
	}
	if err := a.svc.ReplaceDocument(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "saved"})
}
