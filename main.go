package main

import "github.com/alexiusacademia/gosfr/cmd"

func main() {
	cmd.Execute()
}
