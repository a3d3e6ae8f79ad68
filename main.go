package main

import "github.com/fakeyudi/hollowlog/cmd"

func main() {
	cmd.Execute()
}
