// Package main provides the CLI entrypoint for notibar.
package main

func main() {
	Execute()
}
