// Command cif applies chains of image filters from the command line.
//
//	cif -i photo.jpg -o out.png gaussianBlur -radius 4 vignette -intensity 0.8
//	cif -o tile.png checkerboard -color0 "hsl(200,60%,50%)" -width 16
package main

import (
	"os"

	"github.com/Fepozopo/cif/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
