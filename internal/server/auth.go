package server

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/repository/postgresql"
	"gitlab.com/umaxship/console/internal/session"
)

type loginResponse struct {
	Token       string `json:"token"`
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userRepo.ValidateUser(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, postgresql.ErrInvalidCredentials) {
			s.logger.Error("failed to validate user", zap.String("email", email), zap.Error(err))
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sess := session.Session{
		Token:       session.NewToken(),
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if err := s.sessions.Save(r.Context(), sess, s.config.SessionTTL); err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	if rw, ok := w.(*responseWriterWrapper); ok {
		rw.userID = sess.UID
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:       sess.Token,
		UID:         sess.UID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := s.sessions.Delete(r.Context(), sess.Token); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// loadSession resolves the bearer token of r.
func (s *Server) loadSession(r *http.Request) (session.Session, error) {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess, nil
	}
	token, ok := bearerToken(r)
	if !ok {
		return session.Session{}, session.ErrNoSession
	}
	sess, err := s.sessions.Load(r.Context(), token)
	if err != nil {
		return session.Session{}, err
	}
	sess.Token = token
	return sess, nil
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.loadSession(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				s.logger.Error("failed to load session", zap.Error(err))
				respondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}
