package main

import "fmt"

const Version = "0.1.0"

func getVersionString() string {
	return fmt.Sprintf("rcore %s", Version)
}
