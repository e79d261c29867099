package response

type ToggleResponse struct {
	Enabled bool `json:"enabled"`
}
