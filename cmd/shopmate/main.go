package main

import "shopmate/internal/cli"

func main() {
	cli.Execute()
}
