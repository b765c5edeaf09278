package main

import "urdf2sem/internal/cli"

func main() {
	cli.Execute()
}
