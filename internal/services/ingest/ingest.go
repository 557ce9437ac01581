// Package ingest принимает события измерений от аутентифицированных клиентов
// и пересылает их в хранилище временных рядов одной точкой за запрос.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/magabrotheeeer/motion-gateway/internal/models"
)

// StatusSuccess значение квитанции об успешной записи.
const StatusSuccess = "success"

// Ошибки записи. Каждой соответствует свой HTTP-статус.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidPoint       = errors.New("invalid data point")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendRejected    = errors.New("backend rejected write")
)

// Authenticator проверяет заголовок Authorization.
type Authenticator interface {
	Authenticate(authHeader string) (models.User, error)
}

// PointWriter записывает одну точку в указанный bucket.
type PointWriter interface {
	WritePoint(ctx context.Context, bucket string, p *write.Point) error
}

// Receipt подтверждение успешной записи.
type Receipt struct {
	Status string `json:"status"`
}

// Service конвейер записи событий.
type Service struct {
	auth     Authenticator
	writer   PointWriter
	bucket   string
	validate *validator.Validate
	now      func() time.Time
}

// NewService создает конвейер. writer и bucket могут отсутствовать, тогда каждая
// аутентифицированная запись завершится ErrBackendUnavailable.
func NewService(auth Authenticator, writer PointWriter, bucket string) *Service {
	return &Service{
		auth:     auth,
		writer:   writer,
		bucket:   bucket,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Submit аутентифицирует запрос, формирует точку и синхронно пишет ее в хранилище.
func (s *Service) Submit(ctx context.Context, authHeader string, event models.EventData) (Receipt, error) {
	const op = "services.ingest.Submit"

	if _, err := s.auth.Authenticate(authHeader); err != nil {
		return Receipt{}, fmt.Errorf("%s: %w: %w", op, ErrUnauthorized, err)
	}

	point, err := s.BuildPoint(event)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.writer == nil || s.bucket == "" {
		return Receipt{}, fmt.Errorf("%s: %w", op, ErrBackendUnavailable)
	}

	if err := s.writer.WritePoint(ctx, s.bucket, point); err != nil {
		return Receipt{}, fmt.Errorf("%s: %w: %w", op, ErrBackendRejected, err)
	}
	return Receipt{Status: StatusSuccess}, nil
}

// BuildPoint превращает событие в точку: поля mg и count (как float64) и тег form.
// Отсутствие любого из них дает ErrInvalidPoint.
func (s *Service) BuildPoint(event models.EventData) (*write.Point, error) {
	if err := s.validate.Struct(event); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPoint, describe(err))
	}
	if strings.TrimSpace(event.Measurement) == "" {
		return nil, fmt.Errorf("%w: measurement is blank", ErrInvalidPoint)
	}

	mg, count := *event.Fields.Mg, *event.Fields.Count
	if math.IsNaN(mg) || math.IsInf(mg, 0) {
		return nil, fmt.Errorf("%w: field mg must be a finite number", ErrInvalidPoint)
	}
	fields := map[string]any{
		"mg":    mg,
		"count": float64(count),
	}
	tags := map[string]string{"form": event.Form}
	return write.NewPoint(event.Measurement, tags, fields, s.now()), nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
