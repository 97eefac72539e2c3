// Command genhash prints the bcrypt hash of a password, for seeding
// SUPERVISOR_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
