package main

import (
	"github.com/lfarias/fleet-hours/cmd"
)

func main() {
	cmd.Execute()
}
