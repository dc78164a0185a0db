//go:build !linux

package dataset

// renameNoReplace renames src to dst and fails if dst exists. The existence
// check and the rename are two calls, so a file created in between is
// overwritten on platforms where os.Rename replaces.
func renameNoReplace(src, dst string) error {
	return checkedRename(src, dst)
}
