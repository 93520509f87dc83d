package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/laiweb/internal/demo"
	"github.com/vango-dev/laiweb/pkg/runtime"
	"github.com/vango-dev/laiweb/pkg/scheduler"
	"github.com/vango-dev/laiweb/pkg/target/memory"
	"github.com/vango-dev/laiweb/pkg/target/record"
	"github.com/vango-dev/laiweb/pkg/vdom"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		name      string
		nodeIDs   bool
		mutations bool
	)

	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Render a demo component to HTML",
		Long: `Mount a demo component into an in-memory document and print
the resulting HTML.

Examples:
  laiweb render
  laiweb render todo
  laiweb render counter --mutations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				name = cfg.Dev.Demo
			}

			opts := renderOptions{
				NodeIDs:  nodeIDs,
				Equality: vdom.NodesEqual,
				Logger:   newLogger(cfg, os.Stderr),
			}
			if cfg.Keyed() {
				opts.Equality = vdom.KeyedEqual
			}

			out := cmd.OutOrStdout()
			result, err := renderDemo(name, opts)
			if err != nil {
				return err
			}
			if mutations {
				printMutations(out, result.Mutations)
			}
			fmt.Fprintln(out, result.HTML)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "demo", "d", "", "Demo to render (default from config)")
	cmd.Flags().BoolVar(&nodeIDs, "ids", false, "Add data-lw-id attributes to elements with listeners")
	cmd.Flags().BoolVarP(&mutations, "mutations", "m", false, "Print the renderer calls made by the mount")

	return cmd
}

type renderOptions struct {
	NodeIDs  bool
	Equality vdom.Equality
	Logger   *slog.Logger
}

type renderResult struct {
	HTML      string
	Mutations []record.Mutation
}

// renderDemo mounts the named demo and serializes the document. Deferred
// hooks run when the mount returns.
func renderDemo(name string, opts renderOptions) (renderResult, error) {
	def, err := demo.Lookup(name)
	if err != nil {
		return renderResult{}, err
	}

	doc := memory.New()
	rec := record.New(doc)
	sched := scheduler.New(scheduler.WithLogger(opts.Logger))
	rt := runtime.New(rec,
		runtime.WithScheduler(sched),
		runtime.WithLogger(opts.Logger),
		runtime.WithEquality(opts.Equality),
	)

	inst := rt.NewInstance(def, nil, nil, nil)
	if err := inst.Mount(doc.Body(), runtime.End); err != nil {
		return renderResult{}, err
	}

	return renderResult{
		HTML:      memory.InnerHTML(doc.Body(), memory.HTMLOptions{NodeIDs: opts.NodeIDs}),
		Mutations: rec.Drain(),
	}, nil
}

func printMutations(w io.Writer, ms []record.Mutation) {
	for i, m := range ms {
		fmt.Fprintf(w, "%4d  %s\n", i+1, m)
	}
	fmt.Fprintln(w)
}

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the demo components",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
