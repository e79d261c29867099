package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ListTicketRequest struct {
	Collection string `json:"collection"`
	TokenID    uint   `json:"token_id"`
	Price      string `json:"price"`
}

func (req *ListTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Collection, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TokenID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Price, validation.Required, is.Digit),
	)
}

type BuyTicketRequest struct {
	Payment string `json:"payment"`
}

func (req *BuyTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Payment, validation.Required, is.Digit),
	)
}

type MakeOfferRequest struct {
	Amount string `json:"amount"`
}

func (req *MakeOfferRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, is.Digit),
	)
}

type AcceptOfferRequest struct {
	OffererID uint `json:"offerer_id"`
}

func (req *AcceptOfferRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OffererID, validation.Required, validation.Min(uint(1))),
	)
}

type SetFeeRecipientRequest struct {
	RecipientID uint `json:"recipient_id"`
}

func (req *SetFeeRecipientRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RecipientID, validation.Required, validation.Min(uint(1))),
	)
}

type SetFeeBpsRequest struct {
	FeeBps uint `json:"fee_bps"`
}

func (req *SetFeeBpsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FeeBps, validation.Min(uint(0))),
	)
}
