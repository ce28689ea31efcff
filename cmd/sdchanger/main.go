// cmd/sdchanger/main.go
package main

import "github.com/tamzrod/sd-changer/cmd/sdchanger/cmd"

func main() {
	cmd.Execute()
}
