package response

type RefundResponse struct {
	TokenID uint   `json:"token_id"`
	Amount  string `json:"amount"`
}

type WithdrawResponse struct {
	EventID uint   `json:"event_id"`
	Amount  string `json:"amount"`
}
