package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateEventRequest struct {
	MetadataURI string    `json:"metadata_uri"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TicketPrice string    `json:"ticket_price"`
	MaxTickets  uint      `json:"max_tickets"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MetadataURI, validation.Required, is.URL),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
		validation.Field(&req.TicketPrice, validation.Required, is.Digit),
		validation.Field(&req.MaxTickets, validation.Required, validation.Min(uint(1))),
	)
}

type UpdateEventRequest struct {
	MetadataURI string    `json:"metadata_uri"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MetadataURI, validation.Required, is.URL),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
	)
}

type SetRoyaltyRequest struct {
	RoyaltyBps uint `json:"royalty_bps"`
}

func (req *SetRoyaltyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoyaltyBps, validation.Required),
	)
}
