package main

import "github.com/terraincognita07/babyfeed/internal/cli"

func main() {
	cli.Execute()
}
