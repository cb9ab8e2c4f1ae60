// Package ioruntime is the VM's I/O layer: the current input stream plus
// named additional sources, the stdout writer plus a keyed sink table,
// and the broken-pipe-exits-cleanly policy the spec requires of print
// output.
package ioruntime

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"rowvm/internal/vmerr"
)

// reader is one input stream: a buffered record scanner over a ReadCloser.
type reader struct {
	rc   io.ReadCloser
	scan *bufio.Scanner
	err  error
}

func newReader(rc io.ReadCloser, rs string) *reader {
	scan := bufio.NewScanner(rc)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scan.Split(splitOnRS(rs))
	return &reader{rc: rc, scan: scan}
}

// splitOnRS returns a bufio.SplitFunc that breaks records on rs. A
// single byte separator splits literally (the common "\n" case uses
// bufio.ScanLines' own trailing-\r trimming); any other value falls back
// to a 1-byte-at-a-time literal delimiter match.
func splitOnRS(rs string) bufio.SplitFunc {
	if rs == "\n" {
		return bufio.ScanLines
	}
	sep := []byte(rs)
	if len(sep) == 0 {
		return bufio.ScanLines
	}
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := indexBytes(data, sep); i >= 0 {
			return i + len(sep), data[0:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

func indexBytes(data, sep []byte) int {
	if len(sep) == 0 || len(sep) > len(data) {
		return -1
	}
	for i := 0; i+len(sep) <= len(data); i++ {
		match := true
		for j := range sep {
			if data[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Runtime is the interpreter's single I/O handle: one current source
// (stdin or a named file, switched via NextFile), any number of
// explicitly opened additional sources, and a keyed table of output
// sinks (files, SQL row sinks, WebSocket sinks).
type Runtime struct {
	args      []string
	argIdx    int
	current   *reader
	sources   map[string]*reader
	sinks     map[string]Sink
	stdout    *bufio.Writer
	brokenPipe bool
}

// New returns a Runtime whose current source begins at the first entry
// of args (or stdin if args is empty), reading records delimited by rs.
func New(args []string, rs string) (*Runtime, error) {
	rt := &Runtime{
		args:    args,
		sources: make(map[string]*reader),
		sinks:   make(map[string]Sink),
		stdout:  bufio.NewWriter(os.Stdout),
	}
	if err := rt.openCurrent(rs); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) openCurrent(rs string) error {
	if rt.argIdx >= len(rt.args) {
		if rt.argIdx == 0 {
			rt.current = newReader(io.NopCloser(os.Stdin), rs)
			rt.argIdx++
			return nil
		}
		rt.current = nil
		return nil
	}
	path := rt.args[rt.argIdx]
	rt.argIdx++
	f, err := os.Open(path)
	if err != nil {
		return vmerr.Wrap(vmerr.IOOpen, "opening "+path, err)
	}
	rt.current = newReader(f, rs)
	return nil
}

// CurrentFilename returns the path (or "-" for stdin) of the active
// source, for FILENAME.
func (rt *Runtime) CurrentFilename() string {
	if rt.argIdx == 0 || rt.argIdx > len(rt.args) {
		return "-"
	}
	return rt.args[rt.argIdx-1]
}

// NextLine reads the next record from the current source, advancing to
// the next file automatically at EOF. ok is false only once every source
// (including the implicit stdin fallback) is exhausted.
func (rt *Runtime) NextLine(rs string) (line string, ok bool, changedFile bool, err error) {
	for {
		if rt.current == nil {
			return "", false, false, nil
		}
		if rt.current.scan.Scan() {
			return rt.current.scan.Text(), true, changedFile, nil
		}
		if serr := rt.current.scan.Err(); serr != nil {
			rt.current.err = serr
			return "", false, changedFile, vmerr.Wrap(vmerr.IOOpen, "reading "+rt.CurrentFilename(), serr)
		}
		rt.current.rc.Close()
		if err := rt.openCurrent(rs); err != nil {
			return "", false, false, err
		}
		changedFile = true
		if rt.current == nil {
			return "", false, changedFile, nil
		}
	}
}

// NextFile forces the current source closed so the next NextLine call
// advances to the following file.
func (rt *Runtime) NextFile(rs string) error {
	if rt.current == nil {
		return nil
	}
	rt.current.rc.Close()
	return rt.openCurrent(rs)
}

// ReadErr reports whether the last read on the current source failed.
func (rt *Runtime) ReadErr() int64 {
	if rt.current != nil && rt.current.err != nil {
		return 1
	}
	return 0
}

// OpenSource opens (or returns the already-open) named additional
// source, used by the interpreter's explicit-source NextLine variant.
func (rt *Runtime) OpenSource(key, rs string) error {
	if _, ok := rt.sources[key]; ok {
		return nil
	}
	rc, err := openSourceURI(key)
	if err != nil {
		return err
	}
	rt.sources[key] = newReader(rc, rs)
	return nil
}

// NextLineFrom reads the next record from the named additional source.
func (rt *Runtime) NextLineFrom(key, rs string) (line string, ok bool, err error) {
	if err := rt.OpenSource(key, rs); err != nil {
		return "", false, err
	}
	r := rt.sources[key]
	if r.scan.Scan() {
		return r.scan.Text(), true, nil
	}
	if serr := r.scan.Err(); serr != nil {
		r.err = serr
		return "", false, vmerr.Wrap(vmerr.IOOpen, "reading "+key, serr)
	}
	return "", false, nil
}

// ReadErrFrom reports whether the named additional source's last read
// failed.
func (rt *Runtime) ReadErrFrom(key string) int64 {
	if r, ok := rt.sources[key]; ok && r.err != nil {
		return 1
	}
	return 0
}

// PrintStdout writes s followed by ors to stdout. Per the broken-pipe
// policy, a write failure caused by a closed reader on the other end of
// a pipe terminates the process with a clean exit(0) rather than
// surfacing an error -- the conventional behavior of `... | head`.
func (rt *Runtime) PrintStdout(s, ors string) error {
	if rt.brokenPipe {
		return nil
	}
	if _, err := rt.stdout.WriteString(s); err == nil {
		_, err = rt.stdout.WriteString(ors)
		if err == nil {
			return nil
		}
	}
	return rt.handleWriteErr()
}

// Flush flushes buffered stdout, applying the same broken-pipe policy.
func (rt *Runtime) Flush() error {
	if rt.brokenPipe {
		return nil
	}
	if err := rt.stdout.Flush(); err != nil {
		return rt.handleWriteErr()
	}
	return nil
}

// handleWriteErr implements the broken-pipe policy: any stdout write
// failure (EPIPE being the only one that occurs in practice once stdout
// is open) ends the process with exit(0), matching what `... | head`
// expects from a well-behaved producer.
func (rt *Runtime) handleWriteErr() error {
	rt.brokenPipe = true
	os.Exit(0)
	return nil
}

// Sink is a named output destination: a file, a SQL row table, or a
// WebSocket connection.
type Sink interface {
	WriteStr(s string) error
	Close() error
}

// GetSink opens (or returns the already-open) sink for path/uri, append
// controlling file-sink truncate-vs-append semantics (ignored by
// non-file sinks).
func (rt *Runtime) GetSink(uri string, appendMode bool) (Sink, error) {
	if s, ok := rt.sinks[uri]; ok {
		return s, nil
	}
	s, err := openSink(uri, appendMode)
	if err != nil {
		return nil, err
	}
	rt.sinks[uri] = s
	return s, nil
}

// CloseSink closes and forgets the sink for uri, a no-op if it was never
// opened.
func (rt *Runtime) CloseSink(uri string) error {
	s, ok := rt.sinks[uri]
	if !ok {
		return nil
	}
	delete(rt.sinks, uri)
	return s.Close()
}

// CloseAll flushes stdout and closes every open sink concurrently, run
// once at normal program exit. A SQL or WebSocket sink's Close can block
// on a final round trip; with several sinks open there is no reason to
// pay for that serially.
func (rt *Runtime) CloseAll() error {
	rt.Flush()
	var g errgroup.Group
	for uri, s := range rt.sinks {
		s := s
		g.Go(func() error { return s.Close() })
		delete(rt.sinks, uri)
	}
	return g.Wait()
}
