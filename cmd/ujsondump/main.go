// Command ujsondump loads a JSON file and pretty-prints its structure to
// stdout, the Go rewrite of original_source/tests/dump.c.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-ujson/ujson"
)

func main() {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "ujsondump <file.json>",
		Short: "Dump the structure of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], maxDepth)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", ujson.DefaultMaxDepth, "maximum nesting depth")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("ujsondump failed")
	}
}

func runDump(path string, maxDepth int) error {
	r, err := ujson.LoadFile(path)
	if err != nil {
		return err
	}
	r.SetMaxDepth(maxDepth)

	switch r.Start() {
	case ujson.Array:
		dumpArr(r, 0, "")
	case ujson.Object:
		dumpObj(r, 0, "")
	}

	if r.IsErr() {
		r.WriteError(os.Stderr)
		return fmt.Errorf("ujson: parse error")
	}
	return nil
}

func pad(n int) string { return strings.Repeat(" ", n) }

func dumpObj(r *ujson.Reader, depth int, id string) {
	var v ujson.Value

	fmt.Print(pad(depth))
	if id != "" {
		fmt.Printf("%s: {\n", id)
	} else {
		fmt.Println("{")
	}

	for r.ObjFirst(&v); ujson.Valid(&v); r.ObjNext(&v) {
		dumpValue(r, depth+1, v.ID(), &v)
	}

	fmt.Print(pad(depth))
	fmt.Println("}")
}

func dumpArr(r *ujson.Reader, depth int, id string) {
	var v ujson.Value

	fmt.Print(pad(depth))
	if id != "" {
		fmt.Printf("%s: [\n", id)
	} else {
		fmt.Println("[")
	}

	for r.ArrFirst(&v); ujson.Valid(&v); r.ArrNext(&v) {
		dumpValue(r, depth+1, "", &v)
	}

	fmt.Print(pad(depth))
	fmt.Println("]")
}

func dumpValue(r *ujson.Reader, depth int, id string, v *ujson.Value) {
	switch v.Kind {
	case ujson.Object:
		dumpObj(r, depth, id)
	case ujson.Array:
		dumpArr(r, depth, id)
	default:
		fmt.Print(pad(depth))
		printScalar(id, v)
	}
}

func printScalar(id string, v *ujson.Value) {
	prefix := ""
	if id != "" {
		prefix = id + ": "
	}
	switch v.Kind {
	case ujson.Integer:
		fmt.Printf("%s%d\n", prefix, v.Int)
	case ujson.Float:
		fmt.Printf("%s%f\n", prefix, v.Float)
	case ujson.Boolean:
		fmt.Printf("%s%t\n", prefix, v.Bool)
	case ujson.Null:
		fmt.Printf("%snull\n", prefix)
	case ujson.String:
		fmt.Printf("%s%s\n", prefix, v.Str)
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
