package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/piecetable/internal/engine"
	"github.com/dshills/piecetable/internal/logging"
)

// REPL holds the state of an editing session.
type REPL struct {
	engine *engine.Engine
	logger *logging.Logger
	out    io.Writer
	prompt bool
}

func newREPL(e *engine.Engine, logger *logging.Logger, out io.Writer) *REPL {
	return &REPL{engine: e, logger: logging.OrNull(logger), out: out}
}

// Run reads commands from in until quit or end of input.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for {
		if r.prompt {
			fmt.Fprint(r.out, "ptedit> ")
		}
		if !scanner.Scan() {
			break
		}

		input := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(input) == "" || strings.HasPrefix(strings.TrimSpace(input), "#") {
			continue
		}
		if !r.handleCommand(input) {
			return nil
		}
	}
	return scanner.Err()
}

// handleCommand executes one command line. It returns false on quit.
func (r *REPL) handleCommand(input string) bool {
	cmd, rest := cut(input)

	switch strings.ToLower(cmd) {
	case "help":
		r.printHelp()

	case "quit", "exit":
		return false

	case "insert":
		r.cmdInsert(rest)

	case "append":
		r.cmdAppend(rest)

	case "remove", "delete":
		r.cmdRemove(rest)

	case "slice":
		r.cmdSlice(rest, false)

	case "slicei":
		r.cmdSlice(rest, true)

	case "print":
		r.cmdPrint()

	case "len":
		fmt.Fprintln(r.out, r.engine.Len())

	case "undo":
		r.cmdUndo()

	case "redo":
		r.cmdRedo()

	case "pieces":
		r.cmdPieces()

	case "history":
		r.cmdHistory()

	case "entry":
		r.cmdEntry(rest)

	case "stats":
		r.cmdStats()

	case "snapshot":
		r.cmdSnapshot(rest)

	case "snapshots":
		r.cmdSnapshots()

	case "show":
		r.cmdShow(rest)

	case "drop":
		r.cmdDrop(rest)

	case "diff":
		r.cmdDiff(rest)

	case "log":
		r.cmdLog(rest)

	default:
		fmt.Fprintf(r.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (r *REPL) printHelp() {
	help := `Available Commands:
-------------------

EDIT OPERATIONS:
  insert <pos> <text>     Insert text at byte position
  append <text>           Append text at the end
  remove <pos> <n>        Remove n bytes starting at position

READ OPERATIONS:
  print                   Print the whole document
  slice <lower> <upper>   Print the bytes in [lower, upper)
  slicei <lower> <upper>  Print the bytes in [lower, upper]
  len                     Print the document length in bytes

HISTORY:
  undo                    Undo the last edit
  redo                    Redo along the most recently undone branch
  history                 List history entries (* marks the head)
  entry <n>               Show the changes recorded by entry n

INSPECTION:
  pieces                  List the piece sequence
  stats                   Show buffer and history statistics
  snapshot <name>         Capture the document under a name
  snapshots               List snapshots
  show <name>             Print the text of a snapshot
  drop <name>             Delete a snapshot
  diff <name>             Show changes since a snapshot

OTHER:
  log [level]             Show or set the log level
  help                    Show this help message
  quit, exit              Exit

Either slice bound may be written as _ to mean the start or end of the
document. Text may be written bare (\n and \t are expanded) or as a Go
quoted string.`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) cmdInsert(args string) {
	posArg, rest := cut(args)
	pos, err := parseOffset(posArg)
	if err != nil || rest == "" {
		fmt.Fprintln(r.out, "Usage: insert <pos> <text>")
		return
	}
	text, err := decodeText(rest)
	if err != nil {
		fmt.Fprintf(r.out, "Insert error: %v\n", err)
		return
	}
	if err := r.engine.Insert(pos, text); err != nil {
		fmt.Fprintf(r.out, "Insert error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Inserted %d bytes at %d\n", len(text), pos)
}

func (r *REPL) cmdAppend(args string) {
	if args == "" {
		fmt.Fprintln(r.out, "Usage: append <text>")
		return
	}
	text, err := decodeText(args)
	if err != nil {
		fmt.Fprintf(r.out, "Append error: %v\n", err)
		return
	}
	if err := r.engine.Append(text); err != nil {
		fmt.Fprintf(r.out, "Append error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Appended %d bytes\n", len(text))
}

func (r *REPL) cmdRemove(args string) {
	pos, n, ok := parsePair(args)
	if !ok {
		fmt.Fprintln(r.out, "Usage: remove <pos> <n>")
		return
	}
	if err := r.engine.Remove(pos, n); err != nil {
		fmt.Fprintf(r.out, "Remove error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Removed %d bytes at %d\n", n, pos)
}

func (r *REPL) cmdSlice(args string, inclusive bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		fmt.Fprintln(r.out, "Usage: slice <lower|_> <upper|_>")
		return
	}
	lower, hasLower, err1 := parseBound(fields[0])
	upper, hasUpper, err2 := parseBound(fields[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(r.out, "Usage: slice <lower|_> <upper|_>")
		return
	}

	var text string
	var err error
	switch {
	case hasLower && hasUpper && inclusive:
		text, err = r.engine.SliceInclusive(lower, upper)
	case hasLower && hasUpper:
		text, err = r.engine.Slice(lower, upper)
	case hasLower:
		text, err = r.engine.SliceFrom(lower)
	case hasUpper && inclusive:
		text, err = r.engine.SliceToInclusive(upper)
	case hasUpper:
		text, err = r.engine.SliceTo(upper)
	default:
		text, err = r.engine.SliceAll()
	}
	if err != nil {
		fmt.Fprintf(r.out, "Slice error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, text)
}

func (r *REPL) cmdPrint() {
	if _, err := r.engine.WriteTo(r.out); err != nil {
		r.logger.Error("print: %v", err)
		return
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdUndo() {
	ok, err := r.engine.Undo()
	switch {
	case err != nil:
		fmt.Fprintf(r.out, "Undo error: %v\n", err)
	case !ok:
		fmt.Fprintln(r.out, "Nothing to undo")
	default:
		fmt.Fprintf(r.out, "Undone. Head is now entry %d\n", r.engine.HistoryHead())
	}
}

func (r *REPL) cmdRedo() {
	ok, err := r.engine.HotRedo()
	switch {
	case err != nil:
		fmt.Fprintf(r.out, "Redo error: %v\n", err)
	case !ok:
		fmt.Fprintln(r.out, "Nothing to redo")
	default:
		fmt.Fprintf(r.out, "Redone. Head is now entry %d\n", r.engine.HistoryHead())
	}
}

func (r *REPL) cmdPieces() {
	for i, p := range r.engine.Pieces() {
		fmt.Fprintf(r.out, "%4d %s\n", i, p)
	}
}

func (r *REPL) cmdHistory() {
	fmt.Fprintf(r.out, "revision %d\n", r.engine.Revision())
	head := r.engine.HistoryHead()
	for i, entry := range r.engine.HistoryEntries() {
		marker := " "
		if i == head {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %3d parent=%d children=%v hot=%d changes=%d\n",
			marker, i, entry.Parent, entry.Children, entry.HotChild, entry.Commit.Len())
	}
}

func (r *REPL) cmdEntry(args string) {
	idx, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		fmt.Fprintln(r.out, "Usage: entry <n>")
		return
	}
	entry, ok := r.engine.HistoryEntry(idx)
	if !ok {
		fmt.Fprintf(r.out, "No history entry %d\n", idx)
		return
	}
	fmt.Fprintf(r.out, "entry %d parent=%d saved=%s delta=%+d\n",
		idx, entry.Parent, entry.Timestamp.Format(time.TimeOnly), entry.Commit.Delta())
	for _, c := range entry.Commit.Changes {
		fmt.Fprintf(r.out, "  %s\n", c)
	}
}

func (r *REPL) cmdStats() {
	s := r.engine.Stats()
	fmt.Fprintf(r.out, "length:      %d\n", s.Length)
	fmt.Fprintf(r.out, "empty:       %t\n", r.engine.IsEmpty())
	fmt.Fprintf(r.out, "pieces:      %d\n", s.Pieces)
	fmt.Fprintf(r.out, "addition:    %d\n", s.AdditionLen)
	fmt.Fprintf(r.out, "entries:     %d\n", s.Entries)
	fmt.Fprintf(r.out, "depth:       %d\n", s.Depth)
	fmt.Fprintf(r.out, "revision:    %d\n", s.Revision)
	fmt.Fprintf(r.out, "can undo:    %t\n", r.engine.CanUndo())
	fmt.Fprintf(r.out, "can redo:    %t\n", r.engine.CanRedo())
	fmt.Fprintf(r.out, "boundary:    %s\n", r.engine.Boundary())
	fmt.Fprintf(r.out, "read-only:   %t\n", r.engine.IsReadOnly())
}

func (r *REPL) cmdSnapshot(args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		fmt.Fprintln(r.out, "Usage: snapshot <name>")
		return
	}
	id := r.engine.CreateSnapshot(name)
	fmt.Fprintf(r.out, "Snapshot %q created (%s)\n", name, id)
}

func (r *REPL) cmdSnapshots() {
	snaps := r.engine.Snapshots()
	if len(snaps) == 0 {
		fmt.Fprintln(r.out, "No snapshots")
		return
	}
	for _, s := range snaps {
		fmt.Fprintf(r.out, "%-12s rev=%d len=%d age=%s\n",
			s.Name, s.Revision, s.Len(), s.Age().Round(time.Second))
	}
}

func (r *REPL) cmdShow(args string) {
	name := strings.TrimSpace(args)
	id, ok := r.engine.SnapshotByName(name)
	if !ok {
		fmt.Fprintf(r.out, "No snapshot named %q\n", name)
		return
	}
	text, err := r.engine.SnapshotText(id)
	if err != nil {
		fmt.Fprintf(r.out, "Show error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, text)
}

func (r *REPL) cmdDrop(args string) {
	name := strings.TrimSpace(args)
	id, ok := r.engine.SnapshotByName(name)
	if !ok {
		fmt.Fprintf(r.out, "No snapshot named %q\n", name)
		return
	}
	if err := r.engine.DeleteSnapshot(id); err != nil {
		fmt.Fprintf(r.out, "Drop error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Snapshot %q deleted\n", name)
}

func (r *REPL) cmdDiff(args string) {
	name := strings.TrimSpace(args)
	id, ok := r.engine.SnapshotByName(name)
	if !ok {
		fmt.Fprintf(r.out, "No snapshot named %q\n", name)
		return
	}
	result, err := r.engine.DiffSinceSnapshot(id)
	if err != nil {
		fmt.Fprintf(r.out, "Diff error: %v\n", err)
		return
	}
	if !result.HasChanges() {
		fmt.Fprintln(r.out, "No changes")
		return
	}
	fmt.Fprintln(r.out, result.Pretty())
	fmt.Fprintf(r.out, "+%d -%d bytes\n", result.Inserted(), result.Deleted())
}

func (r *REPL) cmdLog(args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		fmt.Fprintf(r.out, "Log level: %s\n", r.logger.Level())
		return
	}
	level, ok := logging.ParseLevel(name)
	if !ok {
		fmt.Fprintf(r.out, "Unknown log level %q\n", name)
		return
	}
	r.logger.SetLevel(level)
	fmt.Fprintf(r.out, "Log level set to %s\n", level)
}

// cut splits s into its first space-separated word and the remainder.
// Exactly one separator is consumed, so the remainder keeps inner spacing.
func cut(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func parseOffset(s string) (engine.ByteOffset, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseBound parses a slice bound. "_" leaves the bound unset.
func parseBound(s string) (engine.ByteOffset, bool, error) {
	if s == "_" {
		return 0, false, nil
	}
	n, err := parseOffset(s)
	return n, err == nil, err
}

func parsePair(args string) (engine.ByteOffset, engine.ByteOffset, bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, 0, false
	}
	a, err := parseOffset(fields[0])
	if err != nil {
		return 0, 0, false
	}
	b, err := parseOffset(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}

// decodeText interprets a command's text argument.
func decodeText(s string) (string, error) {
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(strings.TrimSpace(s))
	}
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s, nil
}
