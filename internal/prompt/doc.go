// Package prompt collects one answer per question from the user.
//
// The reconciliation core only sees the Prompter interface: it hands over
// every question at once and gets back a complete AnswerSet, or an error.
// Three implementations are provided:
//
//   - Interactive: promptui-driven prompts for a terminal
//   - Line: plain line-by-line reading for pipes and scripts
//   - Defaults: accepts every default without reading input (--yes)
//
// All implementations substitute the question's default when the input is
// empty. The core relies on this but does not implement it.
package prompt
