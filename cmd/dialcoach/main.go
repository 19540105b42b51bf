package main

import "github.com/dialcoach-dev/dialcoach/internal/cli"

func main() {
	cli.Execute()
}
