package models

import (
	"testing"
)

// TestCustomerInputNormalize tests whitespace trimming on request input
func TestCustomerInputNormalize(t *testing.T) {
	in := &CustomerInput{Name: "  John ", Industry: "\tMusic\n"}
	in.Normalize()

	if in.Name != "John" {
		t.Errorf("Expected name 'John', got '%s'", in.Name)
	}
	if in.Industry != "Music" {
		t.Errorf("Expected industry 'Music', got '%s'", in.Industry)
	}
}

// TestCustomerInputToCustomer tests that the store is left to assign the ID
func TestCustomerInputToCustomer(t *testing.T) {
	in := &CustomerInput{Name: "Doe", Industry: "Networking"}
	customer := in.ToCustomer()

	if customer.ID != "" {
		t.Errorf("Expected empty ID, got '%s'", customer.ID)
	}
	if customer.Name != "Doe" || customer.Industry != "Networking" {
		t.Errorf("Unexpected customer fields: %+v", customer)
	}
}

// TestCustomerClone tests that clones do not alias the original
func TestCustomerClone(t *testing.T) {
	original := &Customer{ID: "abc", Name: "Marvellous", Industry: "Sports"}
	clone := original.Clone()
	clone.Name = "Changed"

	if original.Name != "Marvellous" {
		t.Errorf("Clone mutated original: %+v", original)
	}

	var nilCustomer *Customer
	if nilCustomer.Clone() != nil {
		t.Error("Clone of nil customer should be nil")
	}
}

// TestCustomerSameContent tests content comparison used by whole-document replace
func TestCustomerSameContent(t *testing.T) {
	a := &Customer{ID: "1", Name: "John", Industry: "Music"}
	b := &Customer{ID: "2", Name: "John", Industry: "Music"}
	c := &Customer{ID: "1", Name: "John"}

	if !a.SameContent(b) {
		t.Error("Customers with equal fields should have the same content")
	}
	if a.SameContent(c) {
		t.Error("Dropping industry should change content")
	}
	if a.SameContent(nil) {
		t.Error("Customer should not match nil")
	}
}
