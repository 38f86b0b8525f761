// Package source defines the shared vocabulary of the upstream adapters:
// the classified fetch error and the requested date window.
//
// Subpackages implement one adapter per wire format:
//   - histapi: the Ljubljana/Zagreb JSON history API
//   - vienna: the Vienna CSV export
package source
