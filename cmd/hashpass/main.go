// Command hashpass prints the bcrypt hash to put in ADMIN_PASS_HASH, or with
// -check verifies a password against an existing hash.
package main

import (
	"flag"
	"fmt"
	"os"

	"catalogadmin/internal/auth"
)

func main() {
	check := flag.String("check", "", "existing hash to verify the password against")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpass [-check HASH] PASSWORD")
		os.Exit(2)
	}
	plain := flag.Arg(0)

	if *check != "" {
		op := auth.NewOperator("", *check)
		if err := op.Verify("", plain); err != nil {
			fmt.Println("FAIL:", err)
			os.Exit(1)
		}
		fmt.Println("SUCCESS")
		return
	}

	hash, err := auth.HashPassword(plain)
	if err != nil {
		fmt.Println("FAIL:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
