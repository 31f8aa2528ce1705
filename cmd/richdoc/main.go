package main

import "github.com/dgallion1/richdoc/internal/cli"

func main() {
	cli.Execute()
}
