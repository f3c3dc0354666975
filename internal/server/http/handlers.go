package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/dmitrijs2005/hotelbook/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

// Response messages.
const (
	MsgRegistered         = "User registered successfully"
	MsgLoggedIn           = "Login successful"
	MsgUserExists         = "User already exists with this email"
	MsgInvalidCredentials = "Invalid credentials"
	MsgRegisterFailed     = "Server error during registration"
	MsgLoginFailed        = "Server error during login"
	MsgInvalidBody        = "Invalid request body"
	MsgNoToken            = "Not authorized, no token"
	MsgTokenFailed        = "Not authorized, token failed"
	MsgTokenExpired       = "Not authorized, token expired"
	MsgHealthy            = "Server is running successfully"
	MsgAPIRunning         = "API is running"
	MsgMethodNotAllowed   = "Method Not Allowed"
)

const maxRequestBody = 1 << 20

// isoMillis matches the timestamp layout browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// AuthService is the behaviour the HTTP layer needs from the user service.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(token string) (string, error)
	Me(ctx context.Context, userID string) (*services.UserSummary, error)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body of successful register and login calls.
type AuthResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	User    services.UserSummary `json:"user"`
	Token   string               `json:"token"`
}

// ErrorResponse is the body of every failed call. Error carries internal
// detail and is only set for 5xx responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type meResponse struct {
	Success bool                  `json:"success"`
	User    *services.UserSummary `json:"user"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Handlers serves the auth API.
type Handlers struct {
	svc    AuthService
	logger logging.Logger
	now    func() time.Time
}

func NewHandlers(svc AuthService, logger logging.Logger) *Handlers {
	return &Handlers{svc: svc, logger: logger, now: time.Now}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, common.ErrDuplicateIdentity):
			writeError(w, http.StatusBadRequest, MsgUserExists)
		default:
			h.logger.Error(r.Context(), "register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: MsgRegisterFailed, Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Success: true, Message: MsgRegistered, User: res.User, Token: res.Token})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, common.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, MsgInvalidCredentials)
		default:
			h.logger.Error(r.Context(), "login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: MsgLoginFailed, Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: MsgLoggedIn, User: res.User, Token: res.Token})
}

// Me returns the caller's profile. It must sit behind RequireAuth.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, MsgNoToken)
		return
	}

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, MsgTokenFailed)
			return
		}
		h.logger.Error(r.Context(), "me failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: http.StatusText(http.StatusInternalServerError), Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Success: true, User: u})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   MsgHealthy,
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}

func (h *Handlers) APIRoot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"message": MsgAPIRunning})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found - "+r.URL.RequestURI())
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// decode reads a JSON body into dst, answering 400 itself on failure.
// An empty body leaves dst zeroed so the service reports the missing fields.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug(r.Context(), "bad request body", "error", err)
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}
