// Package main is the entry point for the metarest CLI.
package main

func main() {
	Execute()
}
