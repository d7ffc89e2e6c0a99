// Package party models the two sides of the marketplace as a single Party
// type: a validated identity plus a role-tagged profile variant. Modeling the
// buyer/seller split as a closed tagged union keeps role checks explicit at
// every authorization point instead of hiding them behind shared base-entity
// inheritance.
package party
