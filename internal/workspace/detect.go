package workspace

// ChangeLister reports paths with uncommitted changes. It is satisfied by
// git.ChangedFiles and by test fakes.
type ChangeLister func() ([]string, error)

// Detector infers the intended test workspace from repository state.
type Detector struct {
	// Changes lists changed file paths from version control.
	Changes ChangeLister
	// WorkDir is the current working directory used as the fallback signal.
	WorkDir string
}

// Detect applies the two-tier heuristic: changed files first, working
// directory second. A failing Changes call is treated as "no changes", never
// as an error, so detection degrades to the directory heuristic in non-git
// checkouts.
func (d *Detector) Detect() Workspace {
	if d.Changes != nil {
		if files, err := d.Changes(); err == nil {
			if ws := FromPaths(files); ws != Unknown {
				return ws
			}
		}
	}
	return FromDir(d.WorkDir)
}
