package main

import "github.com/KirkDiggler/guessyear/internal/cli"

func main() {
	cli.Execute()
}
