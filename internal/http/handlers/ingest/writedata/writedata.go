// Package writedata реализует HTTP-обработчик записи измерений.
//
// Обработчик декодирует тело, передает заголовок Authorization и событие в конвейер записи
// и переводит его ошибки в HTTP-статусы: любой отказ в доступе дает 401 без подробностей,
// некорректная точка 400, недоступность или отказ хранилища 500 с коротким сообщением.
package writedata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/motion-gateway/internal/http/response"
	"github.com/magabrotheeeer/motion-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/motion-gateway/internal/metrics"
	"github.com/magabrotheeeer/motion-gateway/internal/models"
	services "github.com/magabrotheeeer/motion-gateway/internal/services/auth"
	"github.com/magabrotheeeer/motion-gateway/internal/services/ingest"
)

// Service описывает конвейер записи.
type Service interface {
	Submit(ctx context.Context, authHeader string, event models.EventData) (ingest.Receipt, error)
}

// Handler обрабатывает запросы на запись измерений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Записать измерение
// @Description Записывает одну точку в хранилище временных рядов.
// @Tags Ingest
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.EventData true "Измерение"
// @Success 200 {object} response.StatusResponse "Точка записана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или точка"
// @Failure 401 {object} response.ErrorResponse "Нет доступа"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно или отклонило запись"
// @Router /write_data [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ingest.writedata"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var event models.EventData
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		metrics.PointWrites.WithLabelValues("bad_request").Inc()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	receipt, err := h.service.Submit(r.Context(), r.Header.Get("Authorization"), event)
	if err != nil {
		status, body, result := mapError(err)
		if status == http.StatusInternalServerError {
			log.Error("write failed", slog.String("result", result), sl.Err(err))
		} else {
			log.Warn("write refused", slog.String("result", result), sl.Err(err))
		}
		metrics.PointWrites.WithLabelValues(result).Inc()
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("point written", slog.String("measurement", event.Measurement))
	metrics.PointWrites.WithLabelValues("success").Inc()
	render.JSON(w, r, response.Status(receipt.Status))
}

// mapError сводит ошибки конвейера к статусу, телу ответа и метке метрики.
func mapError(err error) (int, response.ErrorResponse, string) {
	switch {
	case errors.Is(err, ingest.ErrUnauthorized), services.IsUnauthorized(err):
		return http.StatusUnauthorized, response.Unauthorized(), "unauthorized"
	case errors.Is(err, ingest.ErrInvalidPoint):
		return http.StatusBadRequest, response.Error(pointDetail(err)), "invalid_point"
	case errors.Is(err, ingest.ErrBackendUnavailable):
		return http.StatusInternalServerError, response.Error("storage backend is not configured"), "backend_unavailable"
	case errors.Is(err, ingest.ErrBackendRejected):
		return http.StatusInternalServerError, response.Error("failed to write to storage backend"), "backend_rejected"
	default:
		return http.StatusInternalServerError, response.Error("internal error"), "error"
	}
}

// pointDetail отрезает префиксы операций, оставляя описание из ingest.
func pointDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ingest.ErrInvalidPoint.Error()); i >= 0 {
		return msg[i:]
	}
	return ingest.ErrInvalidPoint.Error()
}
