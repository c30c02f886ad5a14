package settings

import "time"

// Settings holds the per-shop pre-sale configuration.
type Settings struct {
	Shop       string    `json:"shop"`
	LocationID string    `json:"locationId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
