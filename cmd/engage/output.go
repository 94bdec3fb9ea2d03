package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiBlue  = "\033[34m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(w io.Writer, color, value string) string {
	if !shouldColorize(w) {
		return value
	}
	return color + value + ansiReset
}

func writeHeading(w io.Writer, title string) {
	rule := strings.Repeat("-", len(title))
	fmt.Fprintln(w, paint(w, ansiBlue, title))
	fmt.Fprintln(w, paint(w, ansiBlue, rule))
}

func passLabel(w io.Writer, passed bool) string {
	if passed {
		return paint(w, ansiGreen, "ok")
	}
	return paint(w, ansiRed, "FAIL")
}

func parseIndex(value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", value, err)
	}
	return index, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
