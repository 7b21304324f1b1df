package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/text/transform"

	"github.com/wippyai/textcodec/engine"
	"github.com/wippyai/textcodec/errors"
	"github.com/wippyai/textcodec/mutf8"
	"github.com/wippyai/textcodec/transcoder"
)

const modes = "sniff|repair|utf16|mutf8|decode"

type options struct {
	mode   string
	skip   int
	stream bool
	wasm   string
	fn     string
	offset uint
}

func main() {
	var (
		inFile      = flag.String("in", "", "Input file (default stdin)")
		mode        = flag.String("mode", "repair", "Operation: "+modes)
		skip        = flag.Int("skip", 0, "Bytes to skip before decoding (utf16 mode)")
		stream      = flag.Bool("stream", false, "Repair line by line while reading (repair mode)")
		wasmFile    = flag.String("wasm", "", "Guest module to run against the host functions")
		funcName    = flag.String("func", "run", "Guest export to call with (ptr, len) of the input")
		offset      = flag.Uint("offset", 1024, "Guest address for the input when the guest has no cabi_realloc")
		verbose     = flag.Bool("v", false, "Verbose logging")
		list        = flag.Bool("list", false, "List host functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()
	engine.SetLogger(log)
	transcoder.SetLogger(log)

	if *list {
		for _, sig := range engine.HostFunctions() {
			fmt.Println(sig.String())
		}
		return
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	in, closeIn, err := openInput(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: textcodec [-in file] [-mode "+modes+"] [-skip n] [-stream]")
		fmt.Fprintln(os.Stderr, "       textcodec -wasm <guest.wasm> [-func run] [-in file]")
		fmt.Fprintln(os.Stderr, "       textcodec -i  (interactive mode)")
		os.Exit(1)
	}
	defer closeIn()

	opts := options{
		mode:   *mode,
		skip:   *skip,
		stream: *stream,
		wasm:   *wasmFile,
		fn:     *funcName,
		offset: *offset,
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(context.Background(), in, out, opts)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Debug("run failed", zap.String("mode", opts.mode), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openInput opens the named file, or stdin when name is empty. An
// interactive terminal on stdin is refused since nothing would be read.
func openInput(name string) (io.Reader, func(), error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil, errors.InvalidInput(errors.PhaseConfig, "no input: use -in or pipe data on stdin")
	}
	return os.Stdin, func() {}, nil
}

func run(ctx context.Context, in io.Reader, out io.Writer, opts options) error {
	if opts.wasm != "" {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		return runGuest(ctx, data, out, opts)
	}

	switch opts.mode {
	case "repair":
		if opts.stream {
			_, err := io.Copy(out, transform.NewReader(in, mutf8.Repairer))
			return err
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		_, err = out.Write(mutf8.Repair(data))
		return err

	case "mutf8":
		w := transform.NewWriter(out, mutf8.Encoding.NewEncoder())
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()

	case "decode":
		_, err := io.Copy(out, mutf8.Encoding.NewDecoder().Reader(in))
		return err

	case "sniff", "utf16":
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if opts.mode == "sniff" {
			_, err = fmt.Fprintln(out, sniffVerdict(data))
			return err
		}
		_, err = fmt.Fprintln(out, formatUnits(utf16Units(data, opts.skip)))
		return err

	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("unknown mode %q (want %s)", opts.mode, modes))
	}
}

func sniffVerdict(data []byte) string {
	if mutf8.LooksLikeUTF8(data) {
		return "utf-8"
	}
	return "not utf-8"
}

func utf16Units(data []byte, skip int) []uint16 {
	units := make([]uint16, mutf8.UTF16Size(data))
	return units[:mutf8.DecodeRegion(units, data, skip)]
}

func formatUnits(units []uint16) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%04X", u)
	}
	return strings.Join(parts, " ")
}

// runGuest places data in the guest's memory and calls opts.fn(ptr, len).
func runGuest(ctx context.Context, data []byte, out io.Writer, opts options) error {
	wasm, err := os.ReadFile(opts.wasm)
	if err != nil {
		return fmt.Errorf("read guest: %w", err)
	}

	eng, err := engine.New(ctx, nil)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	inst, err := eng.Instantiate(ctx, "guest", wasm)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	mem := inst.Memory()
	if mem == nil {
		return errors.NotFound(errors.PhaseLoad, "memory", "guest")
	}

	ptr := uint32(opts.offset)
	if alloc := inst.Allocator(ctx); alloc != nil && len(data) > 0 {
		if ptr, err = alloc.Alloc(uint32(len(data)), 1); err != nil {
			return errors.AllocationFailed(errors.PhaseLoad, uint32(len(data)), 1, err)
		}
	}
	if err := mem.Write(ptr, data); err != nil {
		return errors.OutOfBounds(errors.PhaseMemory, "write-input", ptr, uint32(len(data)))
	}

	results, err := inst.Call(ctx, opts.fn, uint64(ptr), uint64(len(data)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s(%d, %d) = %v\n", opts.fn, ptr, len(data), results)
	return err
}
