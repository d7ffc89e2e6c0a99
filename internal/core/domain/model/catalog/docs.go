// Package catalog models a seller's published offering: catalog entries with
// authoritative unit prices and reference market prices, and service areas
// declaring flat delivery surcharges per postal region. Catalog state is
// mutated by seller-side catalog management and read-only to order creation.
package catalog
