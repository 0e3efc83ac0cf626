// Package source loads the two raw texts a reconciliation run starts from:
// the primary .env file and its sample template.
//
// Either file may be missing; a missing file reads as empty text. Any other
// read failure (permission denied, path is a directory) is returned to the
// caller unchanged apart from path context.
package source
