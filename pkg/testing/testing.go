package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the repo root so relative paths (logs/, sqlite files) land in one place.
	//
	//   import (
	//     _ "liyu1981.xyz/prioribin-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
