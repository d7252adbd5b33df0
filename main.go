package main

import "os"

func main() {
	consoleLoop(os.Stdin, os.Stdout)
}
