// Package reconcile implements the reconciliation of a .env file against
// its sample template.
//
// A run is strictly linear:
//
//  1. Load both texts (source.Load)
//  2. Select the baseline: the .env text if it has content, else the sample
//  3. Resolve which names to prompt and their defaults
//  4. Ask the prompter, which returns only after every answer is in
//  5. Diff the answers against the baseline into a ChangeSet
//  6. Plan the output in memory, then write at most once
//
// Nothing is written if any step fails, so an interrupted prompt leaves the
// file as it was.
package reconcile
