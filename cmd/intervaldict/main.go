package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	scenario := pflag.StringP("scenario", "s", "all", "Scenario to run: months, fifteen, bulk or all.")
	day := pflag.IntP("day", "d", 264, "Day of the year looked up in the months scenario.")
	bulk := pflag.Int("bulk", 100000, "Number of intervals inserted by the bulk scenario.")
	width := pflag.Int("width", 1, "Width of each interval inserted by the bulk scenario.")
	verbose := pflag.BoolP("verbose", "v", false, "Verbose output, dumps the tree after each scenario.")

	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *scenario, *day, *bulk, *width, *verbose); err != nil {
		log.Error("scenario failed", "scenario", *scenario, "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, scenario string, day, bulk, width int, verbose bool) error {
	switch scenario {
	case "months":
		_, err := runMonths(log, day, verbose)
		return err
	case "fifteen":
		return runFifteen(log, verbose)
	case "bulk":
		return runBulk(log, bulk, width)
	case "all":
		if _, err := runMonths(log, day, verbose); err != nil {
			return err
		}
		if err := runFifteen(log, verbose); err != nil {
			return err
		}
		return runBulk(log, bulk, width)
	default:
		pflag.Usage()
		return fmt.Errorf("unknown scenario %q", scenario)
	}
}
