/*
Package status owns every interaction between remodel and the disk.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Lines  |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Abstracts the filesystem behind FileSystem (stat, readdir, read, write)
- Writes generated files atomically
- Turns writes into no-ops for dry runs
- Classifies a pending write as new, modified or unchanged
- Formats per-file lines for the console

🔄 Flow:
1. The scanner lists directories through FileSystem
2. The read stage loads specification files
3. The write stage classifies and writes generated files
4. Formatted lines are handed to the log context of the item

🔍 Example:

	fsys := status.OS{}
	if dryRun {
		fsys = status.DryRun(fsys)
	}
	st := status.Classify(fsys, path, content)
	err := fsys.WriteFile(path, content)
*/
package status
