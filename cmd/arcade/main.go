// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ezrec/arcade/board"
	"github.com/ezrec/arcade/translate"
)

// options are the command line settings shared by every board.
type options struct {
	frames   int
	verbose  bool
	strict   bool
	progress bool
}

func main() {
	var opts options
	var jobs int
	var lang string

	flag.IntVar(&opts.frames, "f", 60, "Frames to run")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose mode")
	flag.BoolVar(&opts.strict, "strict", false, "Stop at the first unimplemented opcode")
	flag.IntVar(&jobs, "j", runtime.NumCPU(), "Boards to run in parallel")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if flag.NArg() == 0 {
		log.Fatalf("%v: No board scripts given", os.Args[0])
	}

	// Only a lone board gets a progress line.
	opts.progress = flag.NArg() == 1 && term.IsTerminal(int(os.Stderr.Fd()))

	reports := make([]string, flag.NArg())

	var group errgroup.Group
	group.SetLimit(max(jobs, 1))
	for n, path := range flag.Args() {
		group.Go(func() (err error) {
			reports[n], err = run(path, &opts)
			if err != nil {
				log.Printf("%v: %v", path, err)
			}
			return
		})
	}
	err := group.Wait()

	for _, report := range reports {
		fmt.Print(report)
	}

	if err != nil {
		os.Exit(1)
	}
}

// run loads and runs a board, returning its report.
func run(path string, opts *options) (report string, err error) {
	b, err := board.LoadScript(path, opts.verbose)
	if err != nil {
		return
	}

	b.Strict = opts.strict
	b.Reset()

	if opts.verbose {
		for region := range b.Regions() {
			log.Printf("%v: %-16v %#08x %#x", b.Name, region.Name, region.Base, region.Size)
		}
		for key, mem := range b.Memory() {
			log.Printf("%v: %-16v %d bytes writable", b.Name, key, len(mem.Data))
		}
	}

	for frame := range opts.frames {
		if opts.progress {
			fmt.Fprintf(os.Stderr, "\r%v: frame %d/%d", b.Name, frame+1, opts.frames)
		}
		err = b.RunFrame()
		if err != nil {
			break
		}
	}
	if opts.progress {
		fmt.Fprintln(os.Stderr)
	}

	report = summary(b)
	return
}

// summary describes the state of each core and latch on a board.
func summary(b *board.Board) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%v: %d frames\n", b.Name, b.Frame)
	for slot := range b.Slots() {
		st := slot.Core.Stats()
		fmt.Fprintf(&sb, "%v (%v): executed %d, interrupts %d, unimplemented %d\n",
			slot.Name, slot.Arch, slot.Executed, st.Interrupts, st.Unimplemented)
		if text, ok := slot.Core.(fmt.Stringer); ok {
			fmt.Fprintln(&sb, text.String())
		}
	}
	for latch := range b.Latches() {
		fmt.Fprintf(&sb, "latch %v: %d pending, %d dropped\n", latch.Name, len(latch.Commands()), latch.Dropped)
	}

	return sb.String()
}
