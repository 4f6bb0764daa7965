package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/joe/file-finder/internal/config"
	"github.com/joe/file-finder/internal/finder"
)

// runHeadless does a whole session without questions: search (or load the
// list file), keep the first copy of every duplicate, transfer everything
// and report. It returns the process exit code.
func runHeadless(ctx context.Context, cfg *config.Config, engine *finder.Engine, out io.Writer) int {
	logger := engine.Logger

	if cfg.FromList != "" {
		n, err := engine.LoadList(cfg.FromList)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.FromList).Msg("Failed to load list")
			return 1
		}

		fmt.Fprintf(out, "Loaded %s from %s\n", plural(n, "path", "paths"), cfg.FromList)
	} else {
		result, err := engine.Scan(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Scan failed")
			return 1
		}

		fmt.Fprintf(out, "Found %s (%s)", plural(len(result.Files), "file", "files"), humanize.Bytes(uint64(max(engine.TotalSize(), 0))))
		if result.Skipped > 0 {
			fmt.Fprintf(out, ", %s unreadable", humanize.Comma(int64(result.Skipped)))
		}
		fmt.Fprintln(out)
	}

	if sets := len(engine.Duplicates()); sets > 0 {
		if cfg.Duplicates == config.AskDuplicates {
			logger.Info().Int("sets", sets).Msg("No terminal to ask about duplicates, keeping the first copy of each")
		}

		removed := engine.KeepAllDuplicates()
		fmt.Fprintf(out, "Duplicates: kept the first of %s, dropped %s\n", plural(sets, "set", "sets"), humanize.Comma(int64(removed)))
	}

	if cfg.ExportList != "" {
		if err := engine.ExportList(cfg.ExportList); err != nil {
			logger.Error().Err(err).Str("path", cfg.ExportList).Msg("Export failed")
			return 1
		}

		fmt.Fprintf(out, "Exported the list to %s\n", cfg.ExportList)
	}

	if len(engine.Files()) == 0 {
		fmt.Fprintln(out, "Nothing to transfer")
		return 0
	}

	result, err := engine.Transfer(ctx, finder.TransferRequest{
		Dest:     cfg.DestPath,
		Preserve: cfg.PreserveStructure(),
		Policy:   cfg.Conflict,
		Mode:     cfg.Mode(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Transfer could not start")
		return 1
	}

	printResult(out, result)

	if result.Failed() > 0 && cfg.ErrorLog != "" {
		if err := engine.WriteErrorLog(cfg.ErrorLog, result); err != nil {
			logger.Error().Err(err).Str("path", cfg.ErrorLog).Msg("Failed to write error log")
		} else {
			fmt.Fprintf(out, "Wrote failures to %s\n", cfg.ErrorLog)
		}
	}

	if result.NeedsRescan() && cfg.FromList == "" {
		rescan, err := engine.Scan(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Rescan after move failed")
		} else {
			fmt.Fprintf(out, "Rescanned: %s left in the roots\n", plural(len(rescan.Files), "file", "files"))
		}
	}

	if result.Failed() > 0 || result.Stopped {
		return 1
	}

	return 0
}

func printResult(out io.Writer, result *finder.TransferResult) {
	verb := "Copied"
	if result.Mode == config.Move {
		verb = "Moved"
	}

	if result.Stopped {
		fmt.Fprintf(out, "Stopped after %s of %s\n", humanize.Comma(int64(result.Processed)), plural(result.Total, "file", "files"))
	}

	fmt.Fprintf(out, "%s %s (%s), skipped %s, failed %s\n",
		verb,
		plural(result.Transferred, "file", "files"),
		humanize.Bytes(uint64(max(result.Bytes, 0))),
		humanize.Comma(int64(result.Skipped)),
		humanize.Comma(int64(result.Failed())))

	for _, failure := range result.Failures {
		fmt.Fprintf(out, "  %s\n", failure)
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}

	return humanize.Comma(int64(n)) + " " + pluralForm
}
