package main

import (
	"fmt"
	"os"

	"github.com/NullPointerExeptionBruh/jffs2extract"
)

const usage = `jffs2extract - JFFS2 image extractor

Usage:
  jffs2extract <image> <output_dir>    Extract a JFFS2 image into output_dir

Example:
  jffs2extract flash.img ./rootfs
`

func main() {
	if len(os.Args) != 3 {
		fmt.Print(usage)
		os.Exit(1)
	}

	imagePath := os.Args[1]
	outputDir := os.Args[2]

	e := jffs2.New()
	if err := e.Extract(imagePath, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "jffs2extract: %s\n", err)
		os.Exit(1)
	}
}
