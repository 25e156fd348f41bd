// gridctl: headless layout, settle and export tools for GridFlow catalogs.
//
// Build:
//   go build -o gridctl ./cmd/gridctl

package main

import "github.com/piwi3910/gridflow/internal/cmd"

func main() {
	cmd.Execute()
}
