package http

import (
	"net/http"

	"github.com/Hsinha11/AI-Journal/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func adminHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, messageResponse{
		Message: "Welcome, Admin " + principalOf(r).Username + "! You have accessed the admin-only area.",
	})
}

// reindexHandler starts a full backfill in the background and returns immediately
func (s *Server) reindexHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Indexer.StartBackfill(r.Context()); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "reindex is already running"))
		return
	}

	writeJSON(w, r, http.StatusAccepted, messageResponse{Message: "Reindex started"})
}
