package main

import "github.com/droidozer/droidozer/cmd/droidozer/internal"

func main() {
	internal.Execute()
}
