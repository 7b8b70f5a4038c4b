// Package cli implements the command-line front end. It parses the flags,
// hands one Request to the generator, and prints the resulting path.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/balzmuri/cvgen/internal/config"
	"github.com/balzmuri/cvgen/internal/generator"
)

// CLI defines the flags parsed by Kong. Defaults mirror the web front end.
type CLI struct {
	Template string `short:"t" help:"Template name without .tex extension (default: resume_balz)"`
	Title    string `help:"CV title/subtitle" default:"CV"`
	Style    string `help:"Visual style (modern, elegant, bold, luxe, slate)" default:"modern"`
	Company  string `help:"Target company label (optional)"`
	Output   string `short:"o" help:"Output directory for the PDF (default: ./cv_output)"`
}

// Dependencies holds the injected collaborators so Run can be exercised in
// tests without touching process state.
type Dependencies struct {
	Config  *config.Config
	Service *generator.Service
	Out     io.Writer
	Err     io.Writer
}

// Run parses args, generates the CV, and returns the process exit code.
// The generated path goes to Out; errors go to Err.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := deps.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("cvgen"),
		kong.Description("Generate a PDF CV from a LaTeX template."),
	)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if cli.Template == "" {
		cli.Template = deps.Config.DefaultTemplate
	}

	req := generator.Request{
		Template: cli.Template,
		Title:    cli.Title,
		Style:    cli.Style,
		Company:  cli.Company,
	}

	path, err := deps.Service.GenerateToFile(context.Background(), req, cli.Output)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "PDF generated successfully: %s\n", path)
	return 0
}
