package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingName    = errors.New("warehouse name is required")
	ErrMissingPhone   = errors.New("warehouse phone is required")
	ErrMissingAddress = errors.New("warehouse address and city are required")
	ErrInvalidPin     = errors.New("warehouse pin must be six digits")
	ErrNameLocked     = errors.New("a registered warehouse cannot be renamed")

	pinPattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// Warehouse is a pickup location registered with the carrier.
type Warehouse struct {
	ID                string
	Name              string
	Phone             string
	Email             string
	Address           string
	City              string
	State             string
	Pin               string
	Country           string
	ReturnAddress     string
	ReturnPin         string
	Active            bool
	CarrierRegistered bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Normalize trims free text and fills the default country.
func (w *Warehouse) Normalize() {
	w.Name = strings.TrimSpace(w.Name)
	w.Phone = strings.TrimSpace(w.Phone)
	w.Email = strings.TrimSpace(w.Email)
	w.Address = strings.TrimSpace(w.Address)
	w.City = strings.TrimSpace(w.City)
	w.State = strings.TrimSpace(w.State)
	w.Pin = strings.TrimSpace(w.Pin)
	w.Country = strings.TrimSpace(w.Country)
	if w.Country == "" {
		w.Country = "India"
	}
	w.ReturnAddress = strings.TrimSpace(w.ReturnAddress)
	w.ReturnPin = strings.TrimSpace(w.ReturnPin)
}

// Validate enforces the fields the carrier requires for registration.
func (w *Warehouse) Validate() error {
	if w.Name == "" {
		return ErrMissingName
	}
	if w.Phone == "" {
		return ErrMissingPhone
	}
	if w.Address == "" || w.City == "" {
		return ErrMissingAddress
	}
	if !pinPattern.MatchString(w.Pin) {
		return ErrInvalidPin
	}
	if w.ReturnPin != "" && !pinPattern.MatchString(w.ReturnPin) {
		return ErrInvalidPin
	}
	return nil
}

// ReturnTo returns the return address, defaulting to the pickup address.
func (w *Warehouse) ReturnTo() (address, pin string) {
	if w.ReturnAddress == "" {
		return w.Address, w.Pin
	}
	pin = w.ReturnPin
	if pin == "" {
		pin = w.Pin
	}
	return w.ReturnAddress, pin
}
