// Package main is the entry point of the activity-atlas server.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"github.com/activity-atlas/server/internal"
)

func main() {
	internal.Init()
}
