/*
Package operation runs sort passes over one or more roots.

	+-------------+
	|   Runner    |
	| (errgroup)  |
	+------+------+
	       |
	+------+------+      +-----------+
	|  sortOp     | ---> |  sorter   |
	| (flock/root)|      |  (walk)   |
	+------+------+      +-----------+
	       |
	+------+------+
	| log/status  |
	| (reporting) |
	+-------------+

🎯 Purpose:
- Resolves and validates the roots to sort
- Takes a per-root advisory lock so two tidy processes never sort the
  same tree at once
- Gives every pass a run id that tags its log records
- Fans events out to the console logger and the status tracker

⚡ Concurrency:
A single pass is synchronous. Distinct roots run in parallel up to
Options.Parallel. Roots that contain one another are rejected up front
because their passes would race on the same files.

🔍 Example:

	ctx = log.NewContext(ctx, console)
	runner := operation.NewRunner(operation.Options{
		Sorter:   sorterOpts,
		Parallel: 2,
		LockDir:  operation.DefaultLockDir(),
	})
	summaries, err := runner.Run(ctx, []string{"~/Downloads", "~/Desktop"})
*/
package operation
