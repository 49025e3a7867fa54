package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/chaosvm/driver"
	"github.com/mna/chaosvm/types"
)

// Run is the "run" subcommand: parse and execute the payload named by
// args[0], printing its resulting TDC object as JSON.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, fmt.Errorf("run: read payload: %w", err))
	}

	opts := driver.Options{
		IP:      c.IP,
		UserAgent: c.UA,
		Href:    c.Href,
		Referer: c.Referer,
		Trace:   stdio.Stderr,
	}

	tdc, err := driver.Run(string(src), opts)
	if err != nil {
		return printError(stdio, fmt.Errorf("run: %w", err))
	}

	out, err := types.JSONStringify(tdc)
	if err != nil {
		return printError(stdio, fmt.Errorf("run: stringify result: %w", err))
	}
	fmt.Fprintln(stdio.Stdout, out)
	return nil
}
