package tabula

import "strings"

// Unit labels the physical unit of a column's values. Tabula treats units as
// opaque labels: conversion and arithmetic belong to the caller.
type Unit string

// NoUnit marks a column without a unit
const NoUnit Unit = ""

// IsZero returns true iff no unit is set
func (u Unit) IsZero() bool {
	return strings.TrimSpace(string(u)) == ""
}

// String returns the label of this Unit
func (u Unit) String() string {
	return string(u)
}
