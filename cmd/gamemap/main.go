package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/camoto-project/gamemap"
	_ "github.com/camoto-project/gamemap/cosmo"
	_ "github.com/camoto-project/gamemap/ddave"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

var formatFlag = &cli.StringFlag{
	Name:     "format",
	Aliases:  []string{"f"},
	EnvVars:  []string{"GAMEMAP_FORMAT"},
	Usage:    "format handler id (see --formats)",
	Required: true,
}

// openMap reads the main file, fetches the supplementary files the
// handler asks for in parallel, and parses the bundle. A supplementary
// file missing from disk is skipped; the handler decides whether it can
// live without it.
func openMap(c *cli.Context, logger *log.Logger) (gamemap.FormatHandler, *gamemap.Map2D, error) {
	h := gamemap.Find(c.String("format"))
	if h == nil {
		return nil, nil, fmt.Errorf("unknown format %q", c.String("format"))
	}

	file := c.Args().First()
	main, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}

	content := gamemap.Content{gamemap.MainFile: main}
	if supps := h.Supps(filepath.Base(file), main); supps != nil {
		var mu sync.Mutex
		var g errgroup.Group
		for id, name := range supps {
			id, name := id, name
			g.Go(func() error {
				b, err := os.ReadFile(filepath.Join(filepath.Dir(file), name))
				if os.IsNotExist(err) {
					logger.Printf("no %s file %q, continuing without", id, name)
					return nil
				}
				if err != nil {
					return err
				}
				mu.Lock()
				content[id] = b
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	}

	m, err := h.Parse(content)
	if err != nil {
		return nil, nil, err
	}
	return h, m, nil
}

// saveMap refuses to write while limit issues remain, then generates the
// content bundle and writes the main and supplementary files in
// parallel. Any failed write fails the whole save.
func saveMap(h gamemap.FormatHandler, m *gamemap.Map2D, file string) error {
	if issues := h.CheckLimits(m); len(issues) > 0 {
		for _, s := range issues {
			fmt.Fprintln(os.Stderr, s)
		}
		return fmt.Errorf("refusing to save: %d limit issues", len(issues))
	}

	content, notes, err := h.Generate(m)
	if err != nil {
		return err
	}
	for _, s := range notes {
		fmt.Fprintln(os.Stderr, s)
	}

	names := map[string]string{gamemap.MainFile: file}
	for id, name := range h.Supps(filepath.Base(file), content[gamemap.MainFile]) {
		names[id] = filepath.Join(filepath.Dir(file), name)
	}

	var g errgroup.Group
	for id, b := range content {
		id, b := id, b
		g.Go(func() error {
			name, ok := names[id]
			if !ok {
				return fmt.Errorf("no filename for %s output", id)
			}
			return os.WriteFile(name, b, 0o644)
		})
	}
	return g.Wait()
}

func main() {
	app := cli.NewApp()

	app.Name = "gamemap"
	app.Usage = "MS-DOS game level conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "formats",
			Usage: "list registered format handlers",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.Bool("formats") {
			for _, h := range gamemap.Formats() {
				md := h.Metadata()
				fmt.Printf("%-12s %s\n", md.ID, md.Title)
			}
			return nil
		}
		return cli.ShowAppHelp(c)
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Summarize a map file",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				h, m, err := openMap(c, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				printInfo(h, m)
				return nil
			},
		},
		{
			Name:      "dump",
			Usage:     "Dump the whole map model as YAML",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				_, m, err := openMap(c, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				b, err := yaml.Marshal(dumpView(m))
				if err != nil {
					return cli.Exit(err, 1)
				}
				os.Stdout.Write(b)
				return nil
			},
		},
		{
			Name:      "text",
			Usage:     "Render one tiled layer as text",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				formatFlag,
				&cli.IntFlag{
					Name:    "layer",
					Aliases: []string{"l"},
					Usage:   "layer index, furthest back first",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				_, m, err := openMap(c, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := printText(m, c.Int("layer")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "check",
			Usage:     "List the limit issues of a map file",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				h, m, err := openMap(c, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				issues := h.CheckLimits(m)
				for _, s := range issues {
					fmt.Println(s)
				}
				if len(issues) > 0 {
					return cli.Exit(fmt.Sprintf("%d limit issues", len(issues)), 2)
				}
				fmt.Println("no limit issues")
				return nil
			},
		},
		{
			Name:      "resave",
			Usage:     "Parse a map file and write it back out",
			ArgsUsage: "SRC DST",
			Flags:     []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				h, m, err := openMap(c, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := saveMap(h, m, c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
