// The memview CLI reads and writes typed values in a memory image using
// structure layouts declared in TOML.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "memview",
		Usage:     "Typed access to memory images",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "layout", Usage: "TOML file declaring structure layouts", TakesFile: true, EnvVars: []string{"MEMVIEW_LAYOUT"}},
			&cli.StringFlag{Name: "image", Usage: "Memory image file", TakesFile: true, EnvVars: []string{"MEMVIEW_IMAGE"}},
			&cli.BoolFlag{Name: "wasm", Usage: "Back the image with a wasm linear memory"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable development logging"},
			&cli.BoolFlag{Name: "metrics", Usage: "Print access counters after the command"},
		},
		Commands: []*cli.Command{
			{
				Name:      "sizeof",
				Usage:     "Print the packed size and layout of a type",
				ArgsUsage: "TYPE",
				Action:    sizeofAction,
			},
			{
				Name:      "read",
				Usage:     "Decode a type at an address of the image",
				ArgsUsage: "ADDR TYPE",
				Action:    readAction,
			},
			{
				Name:      "write",
				Usage:     "Encode a JSON value at an address of the image",
				ArgsUsage: "ADDR TYPE JSON",
				Action:    writeAction,
			},
			{
				Name:      "dump",
				Usage:     "Hex dump a range of the image",
				ArgsUsage: "ADDR LEN",
				Action:    dumpAction,
			},
			{
				Name:      "cstring",
				Usage:     "Read a NUL-terminated string",
				ArgsUsage: "ADDR",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max", Usage: "Maximum length, 0 for the default limit"},
					&cli.BoolFlag{Name: "wide", Usage: "Read UTF-16 characters"},
				},
				Action: cstringAction,
			},
			{
				Name:      "inspect",
				Usage:     "Browse a type interactively",
				ArgsUsage: "TYPE",
				Action:    inspectAction,
			},
		},
	}
}

func wantArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s expects %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

func withSession(c *cli.Context, needImage bool, fn func(*session) error) (err error) {
	s, err := openSession(c, needImage)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(c.Context, c.App.ErrWriter); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func sizeofAction(c *cli.Context) error {
	if err := wantArgs(c, 1); err != nil {
		return err
	}
	return withSession(c, false, func(s *session) error {
		t, err := s.typ(c.Args().Get(0))
		if err != nil {
			return err
		}
		d, err := s.codec.Build(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%#x %s\n", d.Size(), d)
		return nil
	})
}

func readAction(c *cli.Context) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	addr, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return withSession(c, true, func(s *session) error {
		t, err := s.typ(c.Args().Get(1))
		if err != nil {
			return err
		}
		v, err := s.conn.PhysRead(addr, t)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, formatValue(v))
		return nil
	})
}

func writeAction(c *cli.Context) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	addr, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return withSession(c, true, func(s *session) error {
		t, err := s.typ(c.Args().Get(1))
		if err != nil {
			return err
		}
		d, err := s.codec.Build(t)
		if err != nil {
			return err
		}
		v, err := parseValue(d, c.Args().Get(2))
		if err != nil {
			return err
		}
		if err := s.conn.PhysWrite(addr, t, v); err != nil {
			return err
		}
		return s.save()
	})
}

func dumpAction(c *cli.Context) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	addr, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(c.Args().Get(1), 0, 31)
	if err != nil {
		return fmt.Errorf("invalid length %q: %w", c.Args().Get(1), err)
	}
	return withSession(c, true, func(s *session) error {
		data, err := s.conn.View().ReadBytes(addr, int(n))
		if err != nil {
			return err
		}
		fmt.Fprint(c.App.Writer, hexDump(uint64(addr), data))
		return nil
	})
}

func cstringAction(c *cli.Context) error {
	if err := wantArgs(c, 1); err != nil {
		return err
	}
	addr, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	return withSession(c, true, func(s *session) error {
		read := s.conn.View().ReadCString
		if c.Bool("wide") {
			read = s.conn.View().ReadWideString
		}
		str, err := read(addr, c.Int("max"))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%q\n", str)
		return nil
	})
}

func inspectAction(c *cli.Context) error {
	if err := wantArgs(c, 1); err != nil {
		return err
	}
	return withSession(c, true, func(s *session) error {
		t, err := s.typ(c.Args().Get(0))
		if err != nil {
			return err
		}
		d, err := s.codec.Build(t)
		if err != nil {
			return err
		}
		color := term.IsTerminal(int(os.Stdout.Fd()))
		return runInspector(newInspector(s.conn.View(), t, d, color))
	})
}
