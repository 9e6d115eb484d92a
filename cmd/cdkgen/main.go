// Command cdkgen generates ABI glue for cdk-go contracts.
package main

import (
	"fmt"
	"os"

	"github.com/c123chain/cdk-go/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
