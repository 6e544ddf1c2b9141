package main

import "apt-sources/internal/cli"

func main() {
	cli.Execute()
}
