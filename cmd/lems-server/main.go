package main

import "github.com/lems-app/lems-server/internal/cli"

func main() {
	cli.Execute()
}
