/*
Package status aggregates sort events and formats outcomes for tidy.

	+-------------+        +-----------+
	|   sorter    | -----> |  Tracker  |
	| (Reporter)  | events | (per root)|
	+-------------+        +-----+-----+
	                             |
	                       +-----+-----+
	                       | Formatter |
	                       |  (table)  |
	                       +-----------+

🎯 Purpose:
- Counts renames, moves, extractions and prunes for each root
- Remembers which destinations were overwritten
- Renders a summary table once every root is done

🔄 Flow:
 1. Tracker.Start hands back a sorter.Reporter bound to one root
 2. The walker reports every event into it
 3. Tracker.Finish records the final state of the root
 4. FileFormatter turns summaries into console text

Tracker is safe for concurrent use, so one instance can be shared by
every root the runner sorts at once.

🔍 Example:

	tracker := status.NewTracker()
	rep := tracker.Start("/home/me/Downloads")
	// ... sort with rep ...
	tracker.Finish("/home/me/Downloads", status.StateSorted, nil)

	fmt.Println(status.NewDefaultFileFormatter().FormatSummary(tracker.Summaries()))
*/
package status
