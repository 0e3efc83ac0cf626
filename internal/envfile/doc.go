// Package envfile parses and patches .env text.
//
// Parse turns raw KEY=VALUE text into an ordered model.EnvMap, using
// godotenv for value semantics (quotes, export prefixes, inline comments)
// and a line scan for key order. Patch applies a model.ChangeSet to raw text
// line by line: defining lines are rewritten in place, everything else
// (comments, blank lines, unrelated variables, line endings) is kept
// byte-for-byte, and keys with no defining line are appended.
//
// Neither function touches the filesystem. Reading and writing are the
// job of the source and reconcile packages.
package envfile
