// Package main is the entry point for paramgate, a declarative
// request-parameter validation service. Schemas describe each action's
// expected arguments; paramgate coerces, defaults, and validates raw
// parameter maps against them before any action logic runs.
package main

func main() {
	Execute()
}
