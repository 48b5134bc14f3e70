package domain

import (
	"fmt"
	"time"
)

// TransmissionType enumerates gearbox kinds.
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "MANUAL"
	TransmissionAutomatic TransmissionType = "AUTOMATIC"
)

func ParseTransmissionType(s string) (TransmissionType, bool) {
	switch TransmissionType(s) {
	case TransmissionManual, TransmissionAutomatic:
		return TransmissionType(s), true
	}
	return "", false
}

// FuelType enumerates engine fuel kinds.
type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
	FuelHybrid   FuelType = "HYBRID"
)

func ParseFuelType(s string) (FuelType, bool) {
	switch FuelType(s) {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return FuelType(s), true
	}
	return "", false
}

// CarStatus is the inventory state of a car.
type CarStatus string

const (
	CarAvailable CarStatus = "AVAILABLE"
	CarSold      CarStatus = "SOLD"
	CarReserved  CarStatus = "RESERVED"
)

func ParseCarStatus(s string) (CarStatus, bool) {
	switch CarStatus(s) {
	case CarAvailable, CarSold, CarReserved:
		return CarStatus(s), true
	}
	return "", false
}

// Car is a single inventory unit. The VIN is the natural key but is not
// unique at the schema level; duplicates can exist across re-listings.
type Car struct {
	ID           int64            `json:"id"`
	VIN          string           `json:"vin"`
	Year         int              `json:"year"`
	Make         string           `json:"make"`
	Model        string           `json:"model"`
	Color        string           `json:"color"`
	Mileage      int              `json:"mileage"`
	Price        int64            `json:"price"`
	Transmission TransmissionType `json:"transmission_type"`
	Fuel         FuelType         `json:"fuel_type"`
	Status       CarStatus        `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	CreatedBy    string           `json:"created_by,omitempty"`
	UpdatedBy    string           `json:"updated_by,omitempty"`
}

// NaturalKey renders the identifying fields used in audit messages,
// e.g. "JH4DA9350LS000111 1990 HONDA INTEGRA".
func (c Car) NaturalKey() string {
	return fmt.Sprintf("%s %d %s %s", c.VIN, c.Year, c.Make, c.Model)
}
