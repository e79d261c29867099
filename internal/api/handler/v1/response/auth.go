package response

import "github.com/ticketforge/ticketforge/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
