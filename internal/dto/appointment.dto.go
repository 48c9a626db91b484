package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ConfirmationCode string    `json:"confirmation_code"`
	ClientName       string    `json:"client_name"`
	ClientPhone      string    `json:"client_phone"`
	ServiceNames     []string  `json:"service_names"`
	TotalPrice       float64   `json:"total_price"`
}

type AppointmentServiceDTO struct {
	ServiceID       uint    `json:"service_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type AppointmentDTO struct {
	ID               uint   `json:"id"`
	ConfirmationCode string `json:"confirmation_code"`
	Status           string `json:"status"`

	BarbershopID uint   `json:"barbershop_id"`
	BarberID     uint   `json:"barber_id"`
	ClientID     uint   `json:"client_id"`
	ClientName   string `json:"client_name,omitempty"`

	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`

	TotalPrice           float64                 `json:"total_price"`
	TotalDurationMinutes int                     `json:"total_duration_minutes"`
	Services             []AppointmentServiceDTO `json:"services"`
	Notes                string                  `json:"notes,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// AppointmentList maps stored rows to the agenda listing.
func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.ServiceName)
		}
		out = append(out, AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartAt,
			EndTime:          ap.EndAt,
			Status:           ap.Status,
			ConfirmationCode: ap.ConfirmationCode,
			ClientName:       ap.Client.Name,
			ClientPhone:      ap.Client.Phone,
			ServiceNames:     names,
			TotalPrice:       ap.TotalPrice,
		})
	}
	return out
}

// Appointment maps one booking. loc is the shop timezone used for the
// wall-clock fields.
func Appointment(ap *models.Appointment, loc *time.Location) AppointmentDTO {
	start, end := ap.StartAt.In(loc), ap.EndAt.In(loc)

	services := make([]AppointmentServiceDTO, 0, len(ap.Services))
	for _, s := range ap.Services {
		services = append(services, AppointmentServiceDTO{
			ServiceID:       s.ServiceID,
			Name:            s.ServiceName,
			Price:           s.UnitPrice,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return AppointmentDTO{
		ID:                   ap.ID,
		ConfirmationCode:     ap.ConfirmationCode,
		Status:               ap.Status,
		BarbershopID:         ap.BarbershopID,
		BarberID:             ap.BarberID,
		ClientID:             ap.ClientID,
		ClientName:           ap.Client.Name,
		Date:                 start.Format("2006-01-02"),
		StartTime:            start.Format("15:04"),
		EndTime:              end.Format("15:04"),
		StartAt:              ap.StartAt,
		EndAt:                ap.EndAt,
		TotalPrice:           ap.TotalPrice,
		TotalDurationMinutes: ap.TotalDurationMinutes,
		Services:             services,
		Notes:                ap.Notes,
		CancellationReason:   ap.CancellationReason,
	}
}
