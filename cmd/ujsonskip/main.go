// Command ujsonskip loads a JSON file and validates it by skipping its
// entire top-level container, the Go rewrite of
// original_source/tests/skip.c.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-ujson/ujson"
)

func main() {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "ujsonskip <file.json>",
		Short: "Validate a JSON file by skipping its entire contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkip(args[0], maxDepth)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", ujson.DefaultMaxDepth, "maximum nesting depth")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("ujsonskip failed")
	}
}

func runSkip(path string, maxDepth int) error {
	r, err := ujson.LoadFile(path)
	if err != nil {
		return err
	}
	r.SetMaxDepth(maxDepth)

	switch r.Start() {
	case ujson.Array:
		err = r.ArrSkip()
	case ujson.Object:
		err = r.ObjSkip()
	}

	if r.IsErr() {
		r.WriteError(os.Stderr)
		return fmt.Errorf("ujson: parse error")
	}
	return err
}
