package main

import "github.com/buildsight/buildsight/internal/cli"

func main() {
	cli.Execute()
}
