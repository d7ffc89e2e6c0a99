// Package services provides domain services of the settlement engine that
// operate across aggregates: the CatalogResolver that settles requested line
// items against a seller's live catalog, and the PricingCalculator that
// computes order totals, delivery surcharge and savings versus the reference
// market price.
//
// Both services are side-effect free; persistence and authorization belong to
// the application layer.
package services
