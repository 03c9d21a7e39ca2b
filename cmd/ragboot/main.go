package main

import "github.com/aqasim81/ragdb-bootstrap/internal/cli"

func main() {
	cli.Execute()
}
