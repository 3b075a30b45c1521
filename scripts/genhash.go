// genhash prints bcrypt hashes for seeding users directly into the database.
//
//	go run scripts/genhash.go -cost 12 'Secret123' 'Other456'
package main

import (
	"flag"
	"fmt"
	"os"

	"ninetytozero-backend/pkg/auth"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewPasswordHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
