package http

import (
	"net/http"

	"extraque/internal/log"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := s.auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Login failed",
			log.FieldOperation, log.OpLogin)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toIdentityJSON(identity))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := s.auth.Signup(r.Context(), creds.Email, creds.Password, sanitizeInput(creds.Name))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Account created",
		log.FieldOperation, log.OpSignup)
	respondJSON(w, http.StatusCreated, toIdentityJSON(identity))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	identity, ok, err := s.auth.Current(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "no active session")
		return
	}
	respondJSON(w, http.StatusOK, toIdentityJSON(identity))
}
