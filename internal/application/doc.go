// Package application wires configuration, the deployment pipeline, its
// collaborators, and the console reporter into a single runnable App,
// keeping the main package focused on flag parsing and exit codes.
package application
