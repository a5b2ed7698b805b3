package main

// shouldUseEditor decides whether add and edit open $EDITOR. An explicit
// --edit or --no-edit wins; otherwise the editor opens only in an
// interactive session where no task field was given on the command line.
func shouldUseEditor(hasFields, editFlag, noEditFlag, interactive bool) bool {
	switch {
	case editFlag:
		return true
	case noEditFlag, hasFields:
		return false
	}
	return interactive
}
