package cmd

import (
	"flag"
	"fmt"
	"os"
)

// Config holds the CLI configuration parsed from arguments.
type Config struct {
	Addr       string // HTTP listen address
	ConfigPath string // Optional YAML config file
}

// ParseArgs parses command line arguments and returns a Config.
func ParseArgs() (*Config, error) {
	config := &Config{}

	flag.StringVar(&config.Addr, "addr", "", "HTTP listen address (overrides config file)")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to YAML config file")

	flag.Usage = printUsage
	flag.Parse()

	return config, nil
}

// printUsage prints the usage information.
func printUsage() {
	fmt.Println("\nUsage:")
	fmt.Println("  audio-bridge [-addr <listen address>] [-config <file>]")
	fmt.Println("\nFlags:")
	fmt.Println("  -addr      HTTP listen address (default :8790)")
	fmt.Println("  -config    Path to YAML config file")
	fmt.Println("\nExamples:")
	fmt.Println("  audio-bridge -addr :8790")
	fmt.Println("  audio-bridge -config bridge.yaml")
	fmt.Println()
}

// PrintUsageAndExit prints usage and exits with code 1.
func PrintUsageAndExit() {
	printUsage()
	os.Exit(1)
}
