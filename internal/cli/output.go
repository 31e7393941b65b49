package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
)

var errNotLoggedIn = errors.New("not logged in, run `roopadmin login` first")

// storeError prefers the message the store recorded. Validation failures
// never reach a store and are returned as they are.
func storeError(err error, recorded string) error {
	var invalid *sniffer.ValidationError
	if errors.As(err, &invalid) || recorded == "" {
		return err
	}
	return errors.New(recorded)
}

func (rt *runtime) printJSON(v any) error {
	enc := json.NewEncoder(rt.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes a header row and rows aligned on tabs.
func (rt *runtime) table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
	writeRow(w, header)
	for _, row := range rows {
		writeRow(w, row)
	}
	return w.Flush()
}

func writeRow(w io.Writer, cols []string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
