// Package login реализует HTTP-обработчик входа по имени пользователя и паролю.
//
// При успехе возвращается JSON с сессионным токеном. Неизвестный пользователь и неверный
// пароль неразличимы для клиента: оба случая дают 401 с одинаковым телом.
package login

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/motion-gateway/internal/http/response"
	"github.com/magabrotheeeer/motion-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/motion-gateway/internal/metrics"
	services "github.com/magabrotheeeer/motion-gateway/internal/services/auth"
)

// Request — структура входных данных для авторизации.
// Пароль не валидируется: пустой или слишком длинный пароль должен получить
// тот же ответ, что и любой другой неверный.
type Request struct {
	Username string `json:"username" validate:"required,max=256" example:"nico"`
	Password string `json:"password" example:"secret"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис проверки учетных данных
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Проверяет имя и пароль, возвращает сессионный токен на 24 часа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.TokenResponse "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Не указано имя пользователя"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		metrics.LoginAttempts.WithLabelValues("invalid_request").Inc()
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if services.IsUnauthorized(err) {
			log.Warn("login rejected", slog.String("username", req.Username), sl.Err(err))
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	render.JSON(w, r, response.TokenResponse{Token: token})
}
