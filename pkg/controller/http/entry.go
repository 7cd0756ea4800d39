package http

import (
	"net/http"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
)

type entryRequest struct {
	Content string `json:"content"`
}

type searchResponse struct {
	Query string `json:"query"`
	// Results is null when the query was blank and [] when nothing matched
	Results []*model.Entry `json:"results"`
}

func (s *Server) listEntriesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.uc.Entry.ListEntries(r.Context(), principalOf(r).UserID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) createEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	entry, err := s.uc.Entry.CreateEntry(r.Context(), principalOf(r).UserID, req.Content)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, entry)
}

func (s *Server) getEntryHandler(w http.ResponseWriter, r *http.Request) {
	id := model.EntryID(chi.URLParam(r, "id"))
	entry, err := s.uc.Entry.GetEntry(r.Context(), principalOf(r).UserID, id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) updateEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	id := model.EntryID(chi.URLParam(r, "id"))
	entry, err := s.uc.Entry.UpdateEntry(r.Context(), principalOf(r).UserID, id, req.Content)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) deleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	id := model.EntryID(chi.URLParam(r, "id"))
	if err := s.uc.Entry.DeleteEntry(r.Context(), principalOf(r).UserID, id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, messageResponse{Message: "Entry deleted successfully."})
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := s.uc.Entry.SearchEntries(r.Context(), principalOf(r).UserID, query)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, searchResponse{Query: query, Results: results})
}
