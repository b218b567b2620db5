// Package profile holds the catalog of known capability profiles and checks
// a node's profile records against it.
//
// The catalog is embedded YAML. A Catalog satisfies bootstrap.Checker, so
// records that name an unknown profile, an incompatible version or an
// element without a suitable sensor produce boot warnings.
package profile
