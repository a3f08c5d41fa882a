// cmd/photo-evidence/main.go
package main

import (
	"github.com/bstardust/photo-evidence/pkg/cli"
)

func main() {
	cli.Execute()
}
