// Command memfsctl is a smoke-test driver for the in-memory filesystem: it
// holds one *memfs.FS for the lifetime of the process and dispatches verbs
// against it, printing results to stdout and failures to stderr.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/kolkov/memfs/memfs"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

// fs is the single in-process filesystem instance every verb operates
// against; memfsctl is a one-shot command, not a server, but verbs are
// still dispatched through memfs.FS's concurrency-safe API so the same
// driver can be extended to a persistent session later without change.
var fs = memfs.New()

func run(out, errOut io.Writer, args []string) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 1
	}

	verb, rest := args[0], args[1:]

	var err error
	switch verb {
	case "create":
		err = cmdCreate(out, rest)
	case "write":
		err = cmdWrite(out, rest)
	case "read":
		err = cmdRead(out, rest)
	case "stat":
		err = cmdStat(out, rest)
	case "rm":
		err = cmdRm(out, rest)
	case "mv":
		err = cmdMv(out, rest)
	case "-h", "--help", "help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "memfsctl: unknown verb %q\n", verb)
		printUsage(errOut)
		return 1
	}

	if err != nil {
		fmt.Fprintf(errOut, "memfsctl: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: memfsctl <verb> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Verbs:")
	fmt.Fprintln(w, "  create [--mode=NNN] <path> create an empty file (mode is octal, default 700)")
	fmt.Fprintln(w, "  write <id> <offset> <str>  write str at offset into id")
	fmt.Fprintln(w, "  read <id> <offset> <len>   read len bytes at offset from id")
	fmt.Fprintln(w, "  stat <id>                  print size and kind of id")
	fmt.Fprintln(w, "  rm <path>                  delete a path")
	fmt.Fprintln(w, "  mv <old> <new>             rename a path")
}

func cmdCreate(out io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("create", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	mode := flagSet.StringP("mode", "m", "700", "POSIX-style creation mode, octal (only 0400/0200 bits matter)")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	positional := flagSet.Args()
	if len(positional) < 1 {
		return fmt.Errorf("create: usage: create [--mode=NNN] <path>")
	}

	modeBits, err := strconv.ParseUint(*mode, 8, 32)
	if err != nil {
		return fmt.Errorf("create: invalid --mode %q: %w", *mode, err)
	}

	id, err := fs.Create(positional[0], uint32(modeBits))
	if err != nil {
		return fmt.Errorf("create %s: %w", positional[0], err)
	}
	fmt.Fprintf(out, "%d\n", id)
	return nil
}

func cmdWrite(out io.Writer, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("write: usage: write <id> <offset> <string>")
	}
	id, offset, err := parseIDOffset(args[0], args[1])
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	n, err := fs.Write(id, []byte(args[2]), offset)
	if err != nil {
		return fmt.Errorf("write %d: %w", id, err)
	}
	fmt.Fprintf(out, "%d\n", n)
	return nil
}

func cmdRead(out io.Writer, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("read: usage: read <id> <offset> <len>")
	}
	id, offset, err := parseIDOffset(args[0], args[1])
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	length, err := strconv.Atoi(args[2])
	if err != nil || length < 0 {
		return fmt.Errorf("read: invalid length %q", args[2])
	}

	buf := make([]byte, length)
	n, err := fs.Read(id, buf, offset)
	if err != nil {
		return fmt.Errorf("read %d: %w", id, err)
	}
	fmt.Fprintf(out, "%s\n", buf[:n])
	return nil
}

// cmdStat calls fs.FileInfo, which panics on an id that names no mnode
// (by contract: a caller is expected to have obtained id from create or a
// successful lookup). A bare numeric id typed at this command line carries
// no such guarantee, so the panic is recovered here and reported the same
// way every other verb reports a bad argument, instead of crashing the
// process.
func cmdStat(out io.Writer, args []string) (err error) {
	if len(args) < 1 {
		return fmt.Errorf("stat: usage: stat <id>")
	}
	id, parseErr := strconv.ParseUint(args[0], 10, 64)
	if parseErr != nil {
		return fmt.Errorf("stat: invalid id %q: %w", args[0], parseErr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stat %d: %v", id, r)
		}
	}()

	info := fs.FileInfo(id)
	fmt.Fprintf(out, "size=%d kind=%s\n", info.Size, info.Kind)
	return nil
}

func cmdRm(_ io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("rm: usage: rm <path>")
	}
	if err := fs.Delete(args[0]); err != nil {
		return fmt.Errorf("rm %s: %w", args[0], err)
	}
	return nil
}

func cmdMv(_ io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("mv: usage: mv <old> <new>")
	}
	if err := fs.Rename(args[0], args[1]); err != nil {
		return fmt.Errorf("mv %s %s: %w", args[0], args[1], err)
	}
	return nil
}

func parseIDOffset(idArg, offsetArg string) (id uint64, offset int, err error) {
	id, err = strconv.ParseUint(idArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid id %q: %w", idArg, err)
	}
	off64, err := strconv.ParseInt(offsetArg, 10, 64)
	if err != nil || off64 < 0 {
		return 0, 0, fmt.Errorf("invalid offset %q", offsetArg)
	}
	return id, int(off64), nil
}
