// Package health реализует проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Handler отвечает 200 с текстовым телом, пока процесс обслуживает запросы.
type Handler struct{}

// New создает Handler проверки живости.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  plain
// @Success 200 {string} string "API is running"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.PlainText(w, r, "API is running")
}
