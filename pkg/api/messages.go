package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tabboard/pkg/board"
)

// messagePayload is the request body for create and update.
type messagePayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Author   string `json:"author"`
}

func (a *API) listMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := board.Filter{Category: q.Get("category")}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Page = n
		}
	}
	msgs, err := a.svc.ListMessages(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Messages any `json:"messages"`
		Count    int `json:"count"`
	}{Messages: msgs, Count: len(msgs)})
}

func (a *API) getMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := a.svc.GetMessage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (a *API) createMessage(w http.ResponseWriter, r *http.Request) {
	var p messagePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Error string `json:"error"`
		}{Error: "invalid json"})
		return
	}
	msg, err := a.svc.CreateMessage(r.Context(), p.Title, p.Content, p.Category, p.Author)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (a *API) updateMessage(w http.ResponseWriter, r *http.Request) {
	var p messagePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Error string `json:"error"`
		}{Error: "invalid json"})
		return
	}
	patch := board.Patch{Title: p.Title, Content: p.Content, Category: p.Category}
	msg, err := a.svc.UpdateMessage(r.Context(), mux.Vars(r)["id"], patch, p.Author)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (a *API) deleteMessage(w http.ResponseWriter, r *http.Request) {
	receipt, err := a.svc.DeleteMessage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Categories any `json:"categories"`
	}{Categories: a.svc.Categories()})
}
