/*
Package status renders user-facing output for dirsum commands.

	            +-------------+
	            |   Status    |
	            |  (Console)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Printer  |           | Format  |
	| (Verdict) |           | (Lines) |
	+-----------+           +---------+

🎯 Purpose:
- Reports command verdicts (validation passed/failed, command failures)
- Formats check outcomes and file records as aligned console lines
- Renders the summary statistics block

🔄 Flow:
1. Commands run validation or the pipeline
2. The printer announces the verdict with pterm prefix printers
3. Format helpers turn reports and summaries into aligned display lines

⚡ Key Responsibilities:
- Verdict reporting with appropriate emoji (✅/⚠️/❌)
- Column-aligned check and file listings
- The 📈 SUMMARY STATISTICS block shared by the pipeline and verify

📝 Design Philosophy:
In-run progress belongs to the run log, which is flushed into the log
artifact. The status package only speaks at the edges of a command, so
nothing it prints ever ends up in processing.log.

🔍 Example:

	printer := status.NewPrinter(ctx, os.Stdout)

	// Verdicts
	printer.Validation(true, "3 file(s) ready for processing", nil)

	// Aligned report lines
	for _, res := range report.Results {
		fmt.Println(status.FormatCheck(res))
	}

	// The statistics block
	for _, line := range status.FormatStats(sum.Statistics) {
		fmt.Println(line)
	}
*/
package status
