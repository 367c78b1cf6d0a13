package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	AutonomyKM  int       `json:"autonomy_km"`
	MaxSpeedKMH int       `json:"max_speed_kmh"`
	PowerW      int       `json:"power_w"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}
