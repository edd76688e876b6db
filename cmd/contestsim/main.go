package main

import (
	"fmt"
	"os"

	"attack_game/cli"
)

func main() {
	if err := cli.NewCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
