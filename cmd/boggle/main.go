package main

import "github.com/mcoot/boggle-go/internal/cli"

func main() {
	cli.Execute()
}
