package main

import "github.com/pageatlas/page-atlas/cmd"

func main() {
	cmd.Execute()
}
