package main

import (
	"fmt"
	"log"
	"os"

	"gaswatch.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateKeyFn  = crypto.GenerateRandomKey
	generateHashFn = crypto.HashAPIKey
	fatalfFn       = log.Fatalf
)

// resolveKey returns the key passed on the command line, or generates a
// fresh random one when none was given
func resolveKey(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return generateKeyFn(32)
}

func main() {
	key, err := resolveKey(os.Args[1:])
	if err != nil {
		fatalfFn("Failed to generate API key: %v", err)
	}

	hash, err := generateHashFn(key)
	if err != nil {
		fatalfFn("Failed to hash API key: %v", err)
	}

	printfFn("API Key:    %s\n", key)
	printfFn("Bcrypt Hash: %s\n", hash)
	printfFn("\nExport the hash before starting the server:\n")
	printfFn("  export ADMIN_API_KEY_HASH='%s'\n", hash)
}
