// Package tabula contains the core vocabulary of Tabula, an in-memory table engine.
// This root package defines the types which are shared by every other package:
// column types, the capability interfaces implemented by regular and mixin columns,
// value comparison and key encoding for indexes, and the policies which control how
// Tables treat units, missing values and conflicting metadata. It is an excellent
// overview of Tabula's key concepts.
package tabula
