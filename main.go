package main

import "github.com/rpupo63/blogly/cmd"

func main() {
	cmd.Execute()
}
