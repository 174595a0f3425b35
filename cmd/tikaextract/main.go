// tikaextract extracting the metadata of a stored file or an url with a remote tika server
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
