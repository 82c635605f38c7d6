package main

import "github.com/mcoot/palnotify/internal/cli"

func main() {
	cli.Execute()
}
