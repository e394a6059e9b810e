package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sushant-115/innopage/core/page"
	"github.com/sushant-115/innopage/core/tablespace"
	"go.uber.org/zap"
)

func newTestTablespace(t *testing.T, types ...page.PageType) *tablespace.Tablespace {
	t.Helper()
	data := make([]byte, len(types)*page.PageSize)
	for i, typ := range types {
		buf := data[i*page.PageSize : (i+1)*page.PageSize]
		binary.BigEndian.PutUint32(buf[4:8], uint32(i))
		binary.BigEndian.PutUint32(buf[8:12], 0xFFFFFFFF)
		binary.BigEndian.PutUint32(buf[12:16], 0xFFFFFFFF)
		binary.BigEndian.PutUint16(buf[24:26], uint16(typ))
	}
	ts, err := tablespace.New(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	t.Cleanup(func() { ts.Close() })
	return ts
}

func TestSummarize_CountsByType(t *testing.T) {
	ts := newTestTablespace(t, page.PageTypeFspHdr, page.PageTypeIndex, page.PageTypeIndex, page.PageType(9999))
	counts, err := summarize(context.Background(), ts)
	require.NoError(t, err)
	require.Equal(t, map[page.PageType]int{
		page.PageTypeFspHdr: 1,
		page.PageTypeIndex:  2,
		page.PageType(9999): 1,
	}, counts)

	var out bytes.Buffer
	require.NoError(t, printSummary(context.Background(), ts, &out))
	require.Contains(t, out.String(), "INDEX")
	require.Contains(t, out.String(), "UNKNOWN(9999)")
	require.Contains(t, out.String(), "TOTAL")
}

func TestExecute_Commands(t *testing.T) {
	ts := newTestTablespace(t, page.PageTypeFspHdr, page.PageTypeIndex)
	ctx := context.Background()
	zlogger := zap.NewNop()

	var out bytes.Buffer
	quit, err := execute(ctx, ts, &out, "page 1", zlogger)
	require.NoError(t, err)
	require.False(t, quit)
	require.Contains(t, out.String(), "INDEX")
	require.Contains(t, out.String(), "level")
	require.Contains(t, out.String(), "none")

	out.Reset()
	_, err = execute(ctx, ts, &out, "help", zlogger)
	require.NoError(t, err)
	require.Contains(t, out.String(), "page <n>")

	_, err = execute(ctx, ts, &out, "page 5", zlogger)
	require.ErrorIs(t, err, tablespace.ErrPageNotFound)

	_, err = execute(ctx, ts, &out, "page x", zlogger)
	require.Error(t, err)

	_, err = execute(ctx, ts, &out, "frobnicate", zlogger)
	require.Error(t, err)

	quit, err = execute(ctx, ts, &out, "   ", zlogger)
	require.NoError(t, err)
	require.False(t, quit)

	quit, err = execute(ctx, ts, &out, "quit", zlogger)
	require.NoError(t, err)
	require.True(t, quit)
}

func TestRunOnce_PageFlag(t *testing.T) {
	ts := newTestTablespace(t, page.PageTypeFspHdr)
	ctx := context.Background()
	zlogger := zap.NewNop()

	var out bytes.Buffer
	err := runOnce(ctx, ts, &out, 1<<32, zlogger)
	require.ErrorIs(t, err, tablespace.ErrPageNotFound)
	require.Empty(t, out.String(), "an oversized page number must not wrap to page 0")

	err = runOnce(ctx, ts, &out, 1, zlogger)
	require.ErrorIs(t, err, tablespace.ErrPageNotFound)

	require.NoError(t, runOnce(ctx, ts, &out, 0, zlogger))
	require.Contains(t, out.String(), "FSP_HDR")

	out.Reset()
	require.NoError(t, runOnce(ctx, ts, &out, -1, zlogger))
	require.Contains(t, out.String(), "TOTAL")
}
