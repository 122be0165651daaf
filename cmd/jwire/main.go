package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jwire-dev/jwire/internal/cli"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to a jwire.yaml config file")
		outFlag     = flag.String("out", "", "Output directory for generated components")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <manifest-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "jwire Component Generator\n")
		fmt.Fprintf(os.Stderr, "Reads .jwire binding manifests and generates component source files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  manifest-paths     Manifest files, directories, or ./... patterns\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                          # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s app/bindings.jwire             # Generate from one manifest\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -out gen ./manifests           # Write components into gen/\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config jwire.yaml ./...       # Use an explicit config file\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one manifest path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *cli.Diagnostics
	if *quietFlag {
		diagnostics = cli.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = cli.NewVerboseDiagnostics()
	} else {
		diagnostics = cli.NewDiagnostics(cli.DiagnosticInfo)
	}

	config := cli.DefaultConfig()
	if *configFlag != "" {
		loaded, err := cli.LoadConfig(*configFlag)
		if err != nil {
			diagnostics.Error(err)
			os.Exit(1)
		}
		config = loaded
	}
	if *outFlag != "" {
		config.OutputDir = *outFlag
	}
	config.Verbose = *verboseFlag

	runner := cli.NewRunner(config, diagnostics)
	if err := runner.Run(args); err != nil {
		diagnostics.Error(err)
		os.Exit(1)
	}
}
