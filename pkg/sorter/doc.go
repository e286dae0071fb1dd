/*
Package sorter organizes a directory tree into category folders.

	+-------------+
	|   Sorter    |
	|  (walker)   |
	+------+------+
	       |
	+------+------+------------+-----------+
	|             |            |           |
	Normalize   Categorize   move/extract  PruneIfEmpty

🎯 Purpose:
- Renames files to a filesystem-safe ascii form
- Moves files into images, video, documents, audio and archives
- Unpacks archives next to where they were collected
- Removes directories that end up empty

🔄 Flow (per directory, depth first):
1. Reserved category directories are skipped
2. Empty subdirectories are removed, the rest are sorted then re-checked
3. Files are normalized in place, categorized by extension and moved

⚠️ Collisions:
A file moved onto an existing name replaces it. The sorter reports an
EventOverwrote before the EventMoved so callers can surface it.

🔍 Example:

	s, err := sorter.New(sorter.Options{Reporter: tracker})
	if err != nil {
		return err
	}
	if err := s.Sort(ctx, "/home/me/Downloads"); errors.Is(err, sorter.ErrPathNotFound) {
		fmt.Println("Path does not exist. Try again.")
	}
*/
package sorter
