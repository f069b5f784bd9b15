package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus/config"
	"campus/infras/postgres"
	"campus/transport/http/response"
)

type Handler struct {
	cfg *config.Config
	db  *postgres.Connection
}

func New(cfg *config.Config, db *postgres.Connection) Handler {
	return Handler{
		cfg: cfg,
		db:  db,
	}
}

func (h *Handler) Router(router chi.Router) {
	router.Get("/status", h.GetStatus)
}

type statusResponse struct {
	App    string `json:"app"`
	Env    string `json:"env"`
	Status string `json:"status"`
}

// GetStatus reports service health, verifying the database connections.
// @Summary Get service status
// @Description Report the health of the service and its database connections.
// @Tags Status
// @Produce json
// @Success 200 {object} response.Data[statusResponse] "Service healthy"
// @Failure 503 {object} response.Error "Service unhealthy"
// @Router /v1/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Read.PingContext(ctx); err != nil {
		response.WithUnhealthy(w)

		return
	}

	if err := h.db.Write.PingContext(ctx); err != nil {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, statusResponse{
		App:    h.cfg.App.Name,
		Env:    h.cfg.Server.Env,
		Status: "healthy",
	})
}
