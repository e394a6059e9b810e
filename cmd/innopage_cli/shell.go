package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/sushant-115/innopage/core/tablespace"
	"go.uber.org/zap"
)

func runShell(ctx context.Context, ts *tablespace.Tablespace, zlogger *zap.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "innopage> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".innopage_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("start shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%d pages. Type help for commands.\n", ts.PageCount())
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := execute(ctx, ts, rl.Stdout(), line, zlogger)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
			zlogger.Debug("shell command failed", zap.String("line", line), zap.Error(err))
		}
		if quit {
			return nil
		}
	}
}
