package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apitree/apitree"
	"github.com/apitree/apitree/export"
	"github.com/apitree/apitree/internal/mcpserver"
	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/synth"
	"github.com/apitree/apitree/tree"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apitree v%s\n", apitree.Version())
	case "help", "-h", "--help":
		printUsage()
	case "tree":
		if err := handleTree(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "example":
		if err := handleExample(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := handleExport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`apitree v%s - OpenAPI spec navigation and request synthesis

Usage: apitree <command> [flags] [arguments]

Commands:
  tree      Print the tag > path > operation tree of a spec
  example   Synthesize an example body for one endpoint
  export    Export request-template documents for every endpoint
  mcp       Run as an MCP server over stdio
  version   Show version information
  help      Show this help message

Run 'apitree <command> -h' for command-specific flags.
`, apitree.Version())
}

// loadDocument parses a spec file with an optional verbose logger.
func loadDocument(path string, verbose bool) (*parser.Document, error) {
	p := parser.New()
	if verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		p.Logger = parser.NewSlogAdapter(slog.New(handler))
	}
	doc, err := p.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing spec: %w", err)
	}
	return doc, nil
}

// treeFlags contains flags for the tree command
type treeFlags struct {
	tag     string
	verbose bool
}

func setupTreeFlags() (*flag.FlagSet, *treeFlags) {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	flags := &treeFlags{}

	fs.StringVar(&flags.tag, "tag", "", "only print the named tag")
	fs.BoolVar(&flags.verbose, "verbose", false, "log walk diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: apitree tree [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Print the tag > path > operation tree of an OpenAPI spec.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  apitree tree openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  apitree tree --tag Pets openapi.yaml\n")
	}

	return fs, flags
}

func handleTree(args []string) error {
	fs, flags := setupTreeFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("tree command requires exactly one file path")
	}

	doc, err := loadDocument(fs.Arg(0), flags.verbose)
	if err != nil {
		return err
	}

	stats := doc.Stats()
	title := ""
	if doc.Info != nil {
		title = doc.Info.Title
	}
	fmt.Printf("%s (OpenAPI %s) — %d paths, %d operations\n\n",
		title, doc.Version, stats.PathCount, stats.OperationCount)

	printed := false
	for _, tag := range tree.Build(doc) {
		if flags.tag != "" && tag.Name != flags.tag {
			continue
		}
		printed = true
		fmt.Printf("%s\n", tag.Name)
		for _, path := range tag.Paths {
			fmt.Printf("  %s\n", path.Path)
			for _, endpoint := range path.Endpoints {
				line := "    " + endpoint.Method()
				if endpoint.Summary != "" {
					line += "  " + endpoint.Summary
				}
				fmt.Println(line)
			}
		}
	}
	if flags.tag != "" && !printed {
		return fmt.Errorf("no tag %q in document", flags.tag)
	}
	return nil
}

// exampleFlags contains flags for the example command
type exampleFlags struct {
	method  string
	path    string
	target  string
	verbose bool
}

func setupExampleFlags() (*flag.FlagSet, *exampleFlags) {
	fs := flag.NewFlagSet("example", flag.ContinueOnError)
	flags := &exampleFlags{}

	fs.StringVar(&flags.method, "method", "GET", "HTTP method of the endpoint")
	fs.StringVar(&flags.path, "path", "", "URL path of the endpoint (required)")
	fs.StringVar(&flags.target, "target", "response", "which body to synthesize: request or response")
	fs.BoolVar(&flags.verbose, "verbose", false, "log diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: apitree example [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Synthesize an example body for one endpoint and print it as JSON.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  apitree example --path /pets openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  apitree example --method POST --path /pets --target request openapi.yaml\n")
	}

	return fs, flags
}

func handleExample(args []string) error {
	fs, flags := setupExampleFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("example command requires exactly one file path")
	}
	if flags.path == "" {
		fs.Usage()
		return fmt.Errorf("--path is required")
	}

	doc, err := loadDocument(fs.Arg(0), flags.verbose)
	if err != nil {
		return err
	}

	endpoint, err := findEndpoint(doc, flags.method, flags.path)
	if err != nil {
		return err
	}

	var kind export.BlockKind
	switch flags.target {
	case "response":
		kind = export.BlockResponse
	case "request":
		kind = export.BlockRequestBody
	default:
		return fmt.Errorf("invalid --target %q; valid values: request, response", flags.target)
	}

	req := export.NewBuilder().BuildRequest(endpoint)
	for _, block := range req.Blocks {
		if block.Kind != kind {
			continue
		}
		data, err := json.MarshalIndent(block.Value, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling example: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	return fmt.Errorf("%s %s declares no %s body", endpoint.Method(), endpoint.Path, flags.target)
}

func findEndpoint(doc *parser.Document, method, path string) (*tree.EndpointNode, error) {
	verb := strings.ToLower(method)
	if !parser.IsHTTPMethod(verb) {
		return nil, fmt.Errorf("unknown HTTP method %q", method)
	}
	for _, tag := range tree.Build(doc) {
		for _, endpoint := range tag.Endpoints() {
			if endpoint.Verb == verb && endpoint.Path == path {
				return endpoint, nil
			}
		}
	}
	return nil, fmt.Errorf("no operation %s %s in document", strings.ToUpper(verb), path)
}

// exportFlags contains flags for the export command
type exportFlags struct {
	outDir    string
	baseURL   string
	tag       string
	overwrite bool
	verbose   bool
}

func setupExportFlags() (*flag.FlagSet, *exportFlags) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	flags := &exportFlags{}

	fs.StringVar(&flags.outDir, "o", "apitree-out", "output directory for request documents")
	fs.StringVar(&flags.baseURL, "base-url", "", "server URL prefix for url blocks")
	fs.StringVar(&flags.tag, "tag", "", "only export endpoints of the named tag")
	fs.BoolVar(&flags.overwrite, "overwrite", false, "replace existing artifacts instead of failing them")
	fs.BoolVar(&flags.verbose, "verbose", false, "log per-endpoint diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: apitree export [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Export a Markdown request document for every endpoint of a spec.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  apitree export -o requests openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  apitree export --tag Pets --base-url https://api.example.com openapi.yaml\n")
	}

	return fs, flags
}

func handleExport(args []string) error {
	fs, flags := setupExportFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("export command requires exactly one file path")
	}

	doc, err := loadDocument(fs.Arg(0), flags.verbose)
	if err != nil {
		return err
	}

	tags := tree.Build(doc)
	if flags.tag != "" {
		var filtered []*tree.TagNode
		for _, tag := range tags {
			if tag.Name == flags.tag {
				filtered = append(filtered, tag)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no tag %q in document", flags.tag)
		}
		tags = filtered
	}

	driver := export.NewFSDriver(flags.outDir)
	driver.Overwrite = flags.overwrite

	opts := []export.ExporterOption{
		export.WithBuilder(export.NewBuilder(
			export.WithBaseURL(flags.baseURL),
			export.WithSynthesizer(synth.New()),
		)),
		export.WithProgress(func(current, total int) {
			fmt.Printf("\rExporting endpoints... %d/%d", current, total)
		}),
	}
	if flags.verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, export.WithLogger(parser.NewSlogAdapter(slog.New(handler))))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := export.NewExporter(driver, opts...).ExportTags(ctx, tags)
	fmt.Println()

	fmt.Printf("Exported %d of %d endpoints to %s\n", result.Succeeded, result.Total, flags.outDir)
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "  failed: %s %s: %v\n",
			failure.Endpoint.Method(), failure.Endpoint.Path, failure.Err)
	}
	return result.Err()
}

func setupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: apitree mcp\n\n")
		_, _ = fmt.Fprintf(output, "Run apitree as an MCP server over stdio.\n\n")
		_, _ = fmt.Fprintf(output, "Add to your MCP client config:\n")
		_, _ = fmt.Fprintf(output, "  {\"command\": \"apitree\", \"args\": [\"mcp\"]}\n")
	}
	return fs
}

func handleMCP(args []string) error {
	fs := setupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
