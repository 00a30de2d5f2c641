// Command filigree generates a decorative infill pattern clipped to a
// boundary outline and writes it as SVG or DXF.
//
// Usage:
//
//	filigree -boundary "M 0 0 L 100 0 L 100 100 L 0 100 Z" \
//	    -pattern parallel_lines -param spacing=3 -param angle_deg=45 \
//	    -o infill.svg
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chazu/filigree/pkg/infill"
	kernelpolyclip "github.com/chazu/filigree/pkg/kernel/polyclip"
	"github.com/chazu/filigree/pkg/pattern"
	"github.com/chazu/filigree/pkg/verify"
)

// paramFlags collects repeatable -param key=value flags. Values that parse
// as numbers become float64; everything else stays a string.
type paramFlags struct {
	params pattern.Params
}

func (p *paramFlags) String() string { return fmt.Sprint(p.params) }

func (p *paramFlags) Set(v string) error {
	key, val, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("want key=value, got %q", v)
	}
	if p.params == nil {
		p.params = pattern.Params{}
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		p.params[key] = f
	} else {
		p.params[key] = val
	}
	return nil
}

func main() {
	log.SetFlags(0)

	var (
		boundaryData = flag.String("boundary", "", "SVG path data for the boundary outline")
		boundaryFile = flag.String("boundary-file", "", "file containing SVG path data for the boundary outline")
		patternName  = flag.String("pattern", "parallel_lines", "pattern type to generate")
		outFile      = flag.String("o", "infill.svg", "output file (.svg or .dxf)")
		doVerify     = flag.Bool("verify", false, "check that all output lies within the boundary")
		list         = flag.Bool("list", false, "list available pattern types and exit")
		params       paramFlags
	)
	flag.Var(&params, "param", "pattern parameter as key=value (repeatable)")
	flag.Parse()

	registry := pattern.DefaultRegistry()

	if *list {
		for _, name := range registry.Names() {
			gen, err := registry.Lookup(name)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s\n    %s\n", name, gen.Description())
		}
		return
	}

	data := *boundaryData
	if *boundaryFile != "" {
		raw, err := os.ReadFile(*boundaryFile)
		if err != nil {
			log.Fatalf("reading boundary file: %v", err)
		}
		data = strings.TrimSpace(string(raw))
	}
	if data == "" {
		log.Fatal("no boundary given: use -boundary or -boundary-file")
	}

	var opts []infill.Option
	if *doVerify {
		opts = append(opts, infill.WithVerification(verify.DefaultTolerance))
	}
	pipe := infill.New(registry, kernelpolyclip.New(), opts...)

	req := infill.Request{
		Path:    data,
		Pattern: *patternName,
		Params:  params.params,
	}

	switch strings.ToLower(filepath.Ext(*outFile)) {
	case ".dxf":
		if err := pipe.WriteDXF(*outFile, req); err != nil {
			log.Fatal(err)
		}
	case ".svg":
		// Render fully before touching the output file, so a failed run
		// leaves no partial document behind.
		var buf bytes.Buffer
		if err := pipe.WriteSVG(&buf, req); err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*outFile, buf.Bytes(), 0o644); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unsupported output format %q: want .svg or .dxf", filepath.Ext(*outFile))
	}

	abs, err := filepath.Abs(*outFile)
	if err != nil {
		abs = *outFile
	}
	log.Printf("pattern written to %s", abs)
}
