// Package prompt implements the wizard's Prompter on an interactive terminal
// with survey, and a Preset wrapper that answers prompts from command-line
// flags so the flows can also run unattended.
package prompt
