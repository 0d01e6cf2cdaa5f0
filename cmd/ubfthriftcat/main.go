// Command ubfthriftcat decodes a stream of Thrift Binary Protocol
// messages from stdin, one message at a time, printing either the
// decoded term (if the message carries the $UBF sentinel envelope) or
// the Message's type, name and seqid otherwise. It exercises the resumable decoder fed in
// small, arbitrary-sized chunks, the term bridge, and an optional
// YAML-backed contract registry end to end, the way the teacher repo
// ships a runnable example alongside every codec it defines
// (examples/thrift/hello).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hibari/ubfthrift/contract"
	"github.com/hibari/ubfthrift/protocol"
	"github.com/hibari/ubfthrift/protocol/binary"
	"github.com/hibari/ubfthrift/session"
	"github.com/hibari/ubfthrift/term"
	"github.com/hibari/ubfthrift/wire"
)

const chunkSize = 16

func main() {
	registryPath := flag.String("registry", "", "path to a YAML contract registry file")
	safe := flag.Bool("safe", false, "decode atoms in safe mode")
	role := flag.String("role", "client", "session role: client or server")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ubfthriftcat: logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var registry contract.Registry
	if *registryPath != "" {
		fr, err := contract.LoadFileRegistry(*registryPath)
		if err != nil {
			logger.Fatal("load contract registry", zap.Error(err))
		}
		registry = fr
	}

	side := session.Client
	if *role == "server" {
		side = session.Server
	}
	sessionRole := session.Role{Side: side, Framing: session.Unframed}

	if err := run(os.Stdin, os.Stdout, logger, registry, sessionRole, *safe); err != nil {
		logger.Error("ubfthriftcat failed", zap.Error(err))
		os.Exit(1)
	}
}

// run reads chunkSize-byte slices from r and feeds them to the
// resumable decoder, demonstrating that decode results are unaffected
// by how the input is chunked (spec.md §4.2 invariant 1, §8 property 3).
func run(r io.Reader, w io.Writer, logger *zap.Logger, registry contract.Registry, role session.Role, safe bool) error {
	br := bufio.NewReader(r)
	atoms := term.NewAtomTable()
	proto := protocol.DefaultBinary
	cont := proto.DecodeInit(nil)

	var errs error
	buf := make([]byte, chunkSize)
	for {
		n, readErr := br.Read(buf)
		fresh := append([]byte(nil), buf[:n]...)

	drain:
		for {
			result := proto.Decode(fresh, cont)
			fresh = nil // only feed newly-read bytes once per read
			switch result.Status {
			case binary.StatusNeedMore:
				cont = result.Cont
				break drain
			case binary.StatusError:
				return multierr.Append(errs, fmt.Errorf("ubfthriftcat: decode: %w", result.Err))
			case binary.StatusDone:
				if printErr := printMessage(w, logger, result.Message, registry, role, atoms, safe); printErr != nil {
					errs = multierr.Append(errs, printErr)
				}
				cont = proto.DecodeInit(result.Remainder)
				if len(result.Remainder) == 0 {
					break drain
				}
			}
		}

		if readErr == io.EOF {
			return errs
		}
		if readErr != nil {
			return multierr.Append(errs, fmt.Errorf("ubfthriftcat: read: %w", readErr))
		}
	}
}

func printMessage(w io.Writer, logger *zap.Logger, msg wire.Message, registry contract.Registry, role session.Role, atoms *term.AtomTable, safe bool) error {
	unwrapped, err := session.Unwrap(logger, msg, role, registry, atoms, safe)
	if err != nil {
		return err
	}
	if unwrapped.Passthrough {
		_, err := fmt.Fprintf(w, "message %s %s seqid=%d\n", unwrapped.Message.Type, unwrapped.Message.Name, unwrapped.Message.SeqID)
		return err
	}
	if unwrapped.Event != session.EventNone {
		_, err := fmt.Fprintf(w, "%s %s\n", unwrapped.Event, formatTerm(unwrapped.Value))
		return err
	}
	_, err = fmt.Fprintf(w, "term %s\n", formatTerm(unwrapped.Value))
	return err
}

// formatTerm is a minimal, debugging-oriented rendering of a Term; it
// makes no claim to matching any particular external textual notation.
func formatTerm(t term.Term) string {
	switch v := t.(type) {
	case term.Binary:
		return fmt.Sprintf("<<%x>>", []byte(v))
	case term.Integer:
		return fmt.Sprintf("%d", int64(v))
	case term.Float:
		return fmt.Sprintf("%g", float64(v))
	case term.Bool:
		return fmt.Sprintf("%t", bool(v))
	case term.Atom:
		return string(v)
	case term.String:
		return fmt.Sprintf("%q", string(v))
	case term.List:
		return formatSeq("[", "]", []term.Term(v))
	case term.Tuple:
		return formatSeq("{", "}", []term.Term(v))
	case term.PropList:
		s := "{"
		for i, e := range v {
			if i > 0 {
				s += ", "
			}
			s += formatTerm(e.Key) + " => " + formatTerm(e.Value)
		}
		return s + "}"
	case term.Record:
		return v.Name + formatSeq("(", ")", v.Fields)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func formatSeq(open, shut string, items []term.Term) string {
	s := open
	for i, item := range items {
		if i > 0 {
			s += ", "
		}
		s += formatTerm(item)
	}
	return s + shut
}
