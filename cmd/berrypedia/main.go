// Package main provides the berrypedia command that builds the strawberry knowledge base page.
package main

import "berrypedia/internal/cli"

func main() {
	cli.Execute()
}
