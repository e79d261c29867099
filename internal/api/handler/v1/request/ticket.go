package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type MintTicketRequest struct {
	EventID uint   `json:"event_id"`
	Payment string `json:"payment"`
}

func (req *MintTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Payment, validation.Required, is.Digit),
	)
}

type TransferTicketRequest struct {
	ToID uint `json:"to_id"`
}

func (req *TransferTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ToID, validation.Required, validation.Min(uint(1))),
	)
}

type MarkUsedRequest struct {
	Used *bool `json:"used"`
}

func (req *MarkUsedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Used, validation.NotNil),
	)
}
