// Command genit2iter compiles a generator method's body into an explicit
// iterator class, per the generator-to-iterator transformation this module
// implements.
package main

import (
	"fmt"
	"os"

	"github.com/corvid-lang/genit2iter/cmd/genit2iter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
