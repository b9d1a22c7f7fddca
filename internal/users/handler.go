package users

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuspass/campuspass/internal/platform/httpx"
	"github.com/campuspass/campuspass/internal/shared"
)

// Handler serves the member directory endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/getAllUsers", h.listUsers)
}

type userSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Faculty   *string   `json:"faculty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type listUsersResponse struct {
	Message string        `json:"message"`
	Users   []userSummary `json:"users"`
	Total   int           `json:"total"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	callerID, ok := sess.UserID()
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}

	users, total, err := h.service.ListForCaller(r.Context(), callerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("list users", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	resp := listUsersResponse{
		Message: "users fetched",
		Users:   make([]userSummary, 0, total),
		Total:   total,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, userSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Faculty:   u.Faculty,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
