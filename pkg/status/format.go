package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/walteh/dirsum/pkg/summary"
	"github.com/walteh/dirsum/pkg/validate"
)

// 🎨 Display configuration
const (
	lineIndent  = 4  // spaces to indent check and file entries
	nameWidth   = 35 // Base width for check name or filename
	kindWidth   = 10 // Width for the text/binary column
	detailWidth = 15 // Width for the line-count column
)

// 🎯 FormatCheck renders one validation check outcome for display. Multi-line
// failure messages are trimmed to their first line; the full text stays in the
// run log.
func FormatCheck(res validate.Result) string {
	prefix := color.GreenString("✓")
	if !res.Passed {
		prefix = color.RedString("✗")
	}

	message, _, _ := strings.Cut(res.Message, "\n")

	return fmt.Sprintf("%s%s %-*s %s",
		strings.Repeat(" ", lineIndent),
		prefix,
		nameWidth,
		res.Name,
		message,
	)
}

// 🎯 FormatFileRecord renders one processed file for display
func FormatFileRecord(rec summary.FileRecord) string {
	kind := "binary"
	detail := "-"
	if rec.IsText {
		kind = "text"
		if rec.LineCount != nil {
			detail = fmt.Sprintf("%s lines", Comma(*rec.LineCount))
		}
	}

	return fmt.Sprintf("%s%s %-*s %-*s %-*s %.2f KB",
		strings.Repeat(" ", lineIndent),
		color.GreenString("✓"),
		nameWidth,
		rec.Name,
		kindWidth,
		kind,
		detailWidth,
		detail,
		rec.SizeKB,
	)
}

// 📊 FormatStats renders the summary statistics block, one line per slice
// entry. The Total Lines line only appears when text files contributed lines.
func FormatStats(stats summary.Stats) []string {
	lines := []string{
		"📈 SUMMARY STATISTICS",
		"",
		fmt.Sprintf("  Total Files:   %d", stats.TotalFiles),
		fmt.Sprintf("  Text Files:    %d", stats.TextFiles),
		fmt.Sprintf("  Binary Files:  %d", stats.BinaryFiles),
		fmt.Sprintf("  Total Size:    %.2f KB (%.2f MB)", stats.TotalSizeKB, stats.TotalSizeMB),
	}

	if stats.TotalLines > 0 {
		lines = append(lines, fmt.Sprintf("  Total Lines:   %s", Comma(stats.TotalLines)))
	}

	return lines
}

// 🔢 Comma groups digits in thousands: 1234567 becomes "1,234,567"
func Comma(n int) string {
	s := strconv.Itoa(n)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	return sign + b.String()
}
