package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sushant-115/innopage/core/page"
	"github.com/sushant-115/innopage/core/page/index"
	"github.com/sushant-115/innopage/core/tablespace"
	"go.uber.org/zap"
)

// runOnce dumps page pageNo, or prints the summary when pageNo is negative.
func runOnce(ctx context.Context, ts *tablespace.Tablespace, w io.Writer, pageNo int64, zlogger *zap.Logger) error {
	if pageNo < 0 {
		return printSummary(ctx, ts, w)
	}
	if pageNo > math.MaxUint32 {
		return fmt.Errorf("%w: page %d exceeds the 32-bit page number range", tablespace.ErrPageNotFound, pageNo)
	}
	return dumpPage(ctx, ts, w, uint32(pageNo), zlogger)
}

// --- Page dump ---

func dumpPage(ctx context.Context, ts *tablespace.Tablespace, w io.Writer, n uint32, zlogger *zap.Logger) error {
	d, err := ts.ReadPage(ctx, n)
	if err != nil {
		return err
	}
	if p, ok := d.(interface{ Dump(*zap.Logger) }); ok {
		p.Dump(zlogger.With(zap.Uint32("pageNo", n)))
	}
	writePage(w, d)
	return nil
}

func formatLink(v uint32, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.FormatUint(uint64(v), 10)
}

func writePage(w io.Writer, d page.Decoder) {
	h := d.FilHeader()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "type\t%s\n", h.Type)
	fmt.Fprintf(tw, "offset\t%d\n", h.Offset)
	fmt.Fprintf(tw, "prev\t%s\n", formatLink(h.Prev, h.HasPrev))
	fmt.Fprintf(tw, "next\t%s\n", formatLink(h.Next, h.HasNext))
	fmt.Fprintf(tw, "checksum\t0x%08x\n", h.Checksum)
	fmt.Fprintf(tw, "lsn\t%d\n", h.LSN)
	fmt.Fprintf(tw, "flush_lsn\t%d\n", h.FlushLSN)
	fmt.Fprintf(tw, "space_id\t%d\n", h.SpaceID)

	if ip, ok := d.(*index.Page); ok {
		ih := ip.IndexHeader()
		fmt.Fprintf(tw, "index_id\t%d\n", ih.IndexID)
		fmt.Fprintf(tw, "level\t%d\n", ih.Level)
		fmt.Fprintf(tw, "records\t%d\n", ih.NumRecords)
		fmt.Fprintf(tw, "compact\t%t\n", ih.Compact)
	}
	tw.Flush()
}

// --- Summary ---

// summarize counts pages by type across the whole tablespace.
func summarize(ctx context.Context, ts *tablespace.Tablespace) (map[page.PageType]int, error) {
	counts := make(map[page.PageType]int)
	err := ts.Each(ctx, func(d page.Decoder) error {
		counts[d.Type()]++
		return nil
	})
	return counts, err
}

func printSummary(ctx context.Context, ts *tablespace.Tablespace, w io.Writer) error {
	counts, err := summarize(ctx, ts)
	if err != nil {
		return err
	}
	types := make([]page.PageType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tPAGES\n")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\n", t, counts[t])
	}
	fmt.Fprintf(tw, "TOTAL\t%d\n", ts.PageCount())
	return tw.Flush()
}

// --- Shell commands ---

const shellHelp = `Commands:
  page <n>   dump the header of page n
  summary    count pages by type
  help       show this message
  quit       exit
`

// execute runs one shell line. It reports whether the shell should exit.
func execute(ctx context.Context, ts *tablespace.Tablespace, w io.Writer, line string, zlogger *zap.Logger) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(w, shellHelp)
		return false, nil
	case "summary":
		return false, printSummary(ctx, ts, w)
	case "page":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: page <n>")
		}
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return false, fmt.Errorf("invalid page number %q: %w", fields[1], err)
		}
		return false, dumpPage(ctx, ts, w, uint32(n), zlogger)
	default:
		return false, fmt.Errorf("unknown command %q, try help", fields[0])
	}
}
