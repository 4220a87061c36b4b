package models

import (
	"strings"
)

// Customer represents a customer record as held by the store
type Customer struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Industry string `json:"industry,omitempty" db:"industry"`
}

// CustomerInput is the request body accepted by create and replace.
// Both JSON and urlencoded form bodies bind to it.
type CustomerInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=256"`
	Industry string `json:"industry" form:"industry" validate:"omitempty,max=256"`
}

// Normalize trims surrounding whitespace from every field
func (in *CustomerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Industry = strings.TrimSpace(in.Industry)
}

// ToCustomer builds a customer without an identifier; the store assigns it
func (in *CustomerInput) ToCustomer() *Customer {
	return &Customer{
		Name:     in.Name,
		Industry: in.Industry,
	}
}

// Clone returns a copy that shares no state with c
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// SameContent reports whether c and other hold the same field values, ignoring the ID
func (c *Customer) SameContent(other *Customer) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name && c.Industry == other.Industry
}
