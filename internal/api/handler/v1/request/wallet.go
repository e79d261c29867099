package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type DepositRequest struct {
	Amount          string `json:"amount"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (req *DepositRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, is.Digit),
		validation.Field(&req.PaymentMethodID, validation.Required),
	)
}
