// Package fetch downloads dataset artifacts over HTTP and lands them under
// the storage root. A download streams into a staging directory next to its
// final destination, is checksum-verified and unpacked there, and is then
// promoted with a single rename, so a failed fetch never leaves a partial
// dataset behind.
package fetch
