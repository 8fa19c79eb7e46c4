// Command godatagen generates synthetic rental datasets.
package main

import "github.com/dbsmedya/godatagen/cmd/godatagen/cmd"

func main() {
	cmd.Execute()
}
