// Package main generates CLI reference documentation from the ssctl command tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/ssello-gateway/cmd/ssctl/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "doc format (markdown, man, yaml)")
	flag.Parse()

	root := cmd.Root()
	if err := generate(root, *format, *output); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("CLI %s docs generated in %s/\n", *format, *output)
}

func generate(root *cobra.Command, format, output string) error {
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root.DisableAutoGenTag = true

	var err error
	switch format {
	case "markdown", "md":
		err = doc.GenMarkdownTree(root, output)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{
			Title:   "SSCTL",
			Section: "1",
			Source:  "ssello-gateway",
		}, output)
	case "yaml":
		err = doc.GenYamlTree(root, output)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("generating %s docs: %w", format, err)
	}
	return nil
}
