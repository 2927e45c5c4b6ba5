package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/quiz"
)

type userRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (r userRequest) user() question.User {
	return question.User{ID: r.UserID, Username: r.Username}
}

type resolveRequest struct {
	userRequest
	Decision quiz.Decision `json:"decision"`
}

type textRequest struct {
	userRequest
	Text string `json:"text"`
}

type callbackRequest struct {
	userRequest
	Data string `json:"data"`
}

type response struct {
	quiz.Payload
	Message string `json:"message"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

func newSessionID() string {
	return uuid.NewString()
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: s.newSession()})
}

func (s *Server) requestQuestion(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeUser(w, r, &req) {
		return
	}
	payload, err := s.service.RequestQuestion(r.Context(), sessionID(r), req.user())
	s.writePayload(w, r, payload, err)
}

func (s *Server) showQuestion(w http.ResponseWriter, r *http.Request, questionID int64) {
	payload, err := s.service.ShowQuestion(r.Context(), sessionID(r), questionID)
	s.writePayload(w, r, payload, err)
}

func (s *Server) revealAnswer(w http.ResponseWriter, r *http.Request, questionID int64) {
	payload, err := s.service.RevealAnswer(r.Context(), sessionID(r), questionID)
	s.writePayload(w, r, payload, err)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request, questionID int64) {
	var req resolveRequest
	if !decodeUser(w, r, &req) {
		return
	}
	payload, err := s.service.Resolve(r.Context(), sessionID(r), req.user(), questionID, req.Decision)
	s.writePayload(w, r, payload, err)
}

func (s *Server) submitText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeUser(w, r, &req) {
		return
	}
	payload, err := s.service.SubmitFreeText(r.Context(), sessionID(r), req.user(), req.Text)
	s.writePayload(w, r, payload, err)
}

// callback dispatches chat-button presses to the matching action.
func (s *Server) callback(w http.ResponseWriter, r *http.Request) {
	var req callbackRequest
	if !decodeUser(w, r, &req) {
		return
	}
	cb, err := ParseCallback(req.Data)
	if err != nil {
		slog.Default().Info("rejected callback", "session_id", sessionID(r), "error", err)
		writeInvalidRequest(w)
		return
	}

	ctx := r.Context()
	var payload quiz.Payload
	switch cb.Kind {
	case CallbackRandomQuestion:
		payload, err = s.service.RequestQuestion(ctx, sessionID(r), req.user())
	case CallbackShowAnswer:
		payload, err = s.service.RevealAnswer(ctx, sessionID(r), cb.QuestionID)
	default:
		payload, err = s.service.Resolve(ctx, sessionID(r), req.user(), cb.QuestionID, cb.Decision())
	}
	s.writePayload(w, r, payload, err)
}

func (s *Server) progress(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["user"], 10, 64)
	if err != nil || userID <= 0 {
		writeInvalidRequest(w)
		return
	}
	user := question.User{ID: userID, Username: r.URL.Query().Get("username")}
	payload, err := s.service.Progress(r.Context(), user)
	s.writePayload(w, r, payload, err)
}

func (s *Server) writePayload(w http.ResponseWriter, r *http.Request, payload quiz.Payload, err error) {
	if err != nil {
		slog.Default().Error("quiz action failed",
			"method", r.Method,
			"path", r.URL.Path,
			"session_id", sessionID(r),
			"error", err,
		)
		status := http.StatusInternalServerError
		if errors.Is(err, question.ErrRetrieval) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, errorResponse{Status: "error", Message: quiz.MessageRetrievalFailed})
		return
	}

	status := http.StatusOK
	if payload.Status == quiz.StatusInvalidRequest {
		status = http.StatusBadRequest
	}
	if payload.Actions == nil {
		payload.Actions = []quiz.Action{}
	}
	writeJSON(w, status, response{Payload: payload, Message: quiz.Message(payload)})
}

type userBody interface {
	user() question.User
}

// decodeUser decodes the body into dst and requires a positive user id.
func decodeUser(w http.ResponseWriter, r *http.Request, dst userBody) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeInvalidRequest(w)
		return false
	}
	if dst.user().ID <= 0 {
		writeInvalidRequest(w)
		return false
	}
	return true
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["session"]
}

func writeInvalidRequest(w http.ResponseWriter) {
	payload := quiz.Payload{Status: quiz.StatusInvalidRequest, Actions: []quiz.Action{}}
	writeJSON(w, http.StatusBadRequest, response{Payload: payload, Message: quiz.Message(payload)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write response", "error", err)
	}
}
