package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"hintrun/internal/diag"
)

// MarkerHeader precedes Marker output; editor plugins split on it to drop
// whatever node printed before.
const MarkerHeader = "*** JSHint output ***"

// StopMessage is printed for the engine's abort sentinel.
const StopMessage = "Stopping, unable to continue."

// Plain writes one "<line> <character> <message>" line per diagnostic.
// The abort sentinel prints StopMessage and ends the output; entries without
// text are skipped.
func Plain(w io.Writer, list diag.List) error {
	return writeLines(w, list, "%d %d %s\n")
}

// Marker writes MarkerHeader followed by "<line> :: <character> :: <message>"
// lines. Nothing at all is written for an empty list.
func Marker(w io.Writer, list diag.List) error {
	if len(list) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, MarkerHeader+"\n"); err != nil {
		return err
	}
	return writeLines(w, list, "%d :: %d :: %s\n")
}

func writeLines(w io.Writer, list diag.List, layout string) error {
	bw := bufio.NewWriter(w)
	for _, d := range list {
		if d == nil {
			fmt.Fprintln(bw, StopMessage)
			break
		}
		if !d.HasMessage() {
			continue
		}
		fmt.Fprintf(bw, layout, d.Line, d.Character, d.Message())
	}
	return bw.Flush()
}
