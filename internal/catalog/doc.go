// Package catalog maps dataset names to their remote sources. A built-in
// catalog ships embedded in the binary; user catalog files under
// ~/.spektral/catalog.d/*.yaml are merged over it, with user entries winning
// on name collision. Every document is validated against an embedded JSON
// Schema before merge, and invalid user files are reported and skipped rather
// than aborting the load.
package catalog
