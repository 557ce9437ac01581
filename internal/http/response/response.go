// Package response содержит типы и функции для формирования JSON‑ответов
// HTTP‑обработчиков в едином формате.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"unauthorized"`
}

// StatusResponse тело успешного ответа без данных.
type StatusResponse struct {
	Status string `json:"status" example:"success"`
}

// TokenResponse тело ответа на успешный вход.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// MsgUnauthorized единое сообщение для всех отказов в доступе.
const MsgUnauthorized = "unauthorized"

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Unauthorized возвращает непрозрачный ответ об отказе в доступе.
func Unauthorized() ErrorResponse {
	return ErrorResponse{Error: MsgUnauthorized}
}

// Status возвращает StatusResponse.
func Status(status string) StatusResponse {
	return StatusResponse{Status: status}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
