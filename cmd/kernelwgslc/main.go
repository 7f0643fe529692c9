// Command kernelwgslc lowers the built-in sample kernels to WGSL.
//
// Usage:
//
//	kernelwgslc [options] <kernel>
//
// Examples:
//
//	kernelwgslc add                       # Print WGSL for the add kernel
//	kernelwgslc -o add.wgsl add           # Write WGSL to a file
//	kernelwgslc -platform darwin tanh     # Use the darwin polyfills
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/kernelwgsl"
	"github.com/gogpu/kernelwgsl/internal/samples"
	"github.com/gogpu/kernelwgsl/kernel"
)

var (
	output    = flag.String("o", "", "output file (default: stdout)")
	platform  = flag.String("platform", runtime.GOOS, "target operating system")
	validate  = flag.Bool("validate", true, "validate the generated WGSL with naga")
	unchecked = flag.Bool("unchecked", false, "lower in unchecked mode")
	verbose   = flag.Bool("v", false, "log lowering details to stderr")
	version   = flag.Bool("version", false, "print version")
)

const kernelwgslVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("kernelwgslc version %s\n", kernelwgslVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no kernel specified")
		usage()
		os.Exit(1)
	}

	def, ok := samples.Lookup(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown kernel %q\n", args[0])
		usage()
		os.Exit(1)
	}

	if *verbose {
		kernelwgsl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mode := kernel.Checked
	if *unchecked {
		mode = kernel.Unchecked
	}
	source, err := kernelwgsl.CompileSourceWithOptions(def, mode, kernelwgsl.CompileOptions{
		Platform: *platform,
		Validate: *validate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		err = os.WriteFile(*output, []byte(source), 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully lowered %s to %s (%d bytes)\n", args[0], *output, len(source))
		return
	}
	if _, err := os.Stdout.WriteString(source); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: kernelwgslc [options] <kernel>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nKernels:\n")
	for _, name := range samples.Names() {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
}
