package models

import "time"

type VehicleType string

const (
	VehicleBike    VehicleType = "Bike"
	VehicleScooter VehicleType = "Scooter"
	VehicleCar     VehicleType = "Car"
)

// VehicleModel is an entry of the model lookup list. Jobcards refer to it by name only.
type VehicleModel struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" validate:"required"`
	Type      VehicleType `json:"type" validate:"oneof=Bike Scooter Car"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateVehicleModelRequest represents the request body for adding a model
type CreateVehicleModelRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
