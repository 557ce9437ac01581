package models

// EventData одно измерение, присланное клиентом на запись.
// Все поля обязательны: отсутствующее значение не подменяется нулем.
type EventData struct {
	Measurement string      `json:"measurement" validate:"required" example:"motion"`
	Fields      *DataFields `json:"fields" validate:"required"`
	Form        string      `json:"form" validate:"required" example:"A"`
}

// DataFields числовые поля измерения.
type DataFields struct {
	Mg    *float64 `json:"mg" validate:"required" example:"12.5"`
	Count *int64   `json:"count" validate:"required" example:"3"`
}

// NewDataFields создает заполненные поля измерения.
func NewDataFields(mg float64, count int64) *DataFields {
	return &DataFields{Mg: &mg, Count: &count}
}
