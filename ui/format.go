package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// hotCPU is the CPU percentage above which a row is drawn bold.
const hotCPU = 50.0

// FormatAge renders an elapsed duration as H:MM:SS, prefixed by whole
// days when there are any.
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	h := (secs % 86400) / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func FormatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	days := secs / 86400
	h := (secs % 86400) / 3600
	m := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, h, m)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// clip shortens s to at most n terminal cells. Wide runes that would
// straddle the limit are dropped whole.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return ansi.Truncate(s, n, "")
}

// fit clips s to n cells and pads it with spaces to exactly n cells.
func fit(s string, n int) string {
	s = clip(s, n)
	if w := ansi.StringWidth(s); w < n {
		s += strings.Repeat(" ", n-w)
	}
	return s
}
