package dto

import (
	"time"

	"github.com/edulane/edulane-api/internal/models"
)

// HolidayCreateRequest describes the admin payload for creating a holiday.
type HolidayCreateRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// HolidayResponse is the serialized holiday representation.
type HolidayResponse struct {
	ID   uint      `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// NewHolidayResponse converts a model into a DTO.
func NewHolidayResponse(model models.Holiday) HolidayResponse {
	return HolidayResponse{ID: model.ID, Name: model.Name, Date: model.Date}
}

// NewHolidayResponseSlice converts a slice of models into DTOs.
func NewHolidayResponseSlice(holidays []models.Holiday) []HolidayResponse {
	responses := make([]HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		responses = append(responses, NewHolidayResponse(holiday))
	}
	return responses
}
