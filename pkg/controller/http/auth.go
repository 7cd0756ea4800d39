package http

import (
	"net/http"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

type registerResponse struct {
	Message string       `json:"message"`
	UserID  model.UserID `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	if s.uc.Auth == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(model.ErrForbidden, "registration is not available"))
		return
	}

	var req registerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	user, err := s.uc.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if s.uc.Auth == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(model.ErrForbidden, "login is not available"))
		return
	}

	var req loginRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	token, err := s.uc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, loginResponse{Token: token})
}
