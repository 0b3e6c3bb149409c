package verb

// Internal is an action handled in-process by the application state machine.
type Internal int

const (
	Back Internal = iota
	ClosePanelOK
	ClosePanelCancel
	ClosePreview
	CopyPath
	Filesystems
	Focus
	Help
	InputPaste
	LineDown
	LineUp
	NextMatch
	NoSort
	OpenLeave
	OpenPreview
	OpenStay
	OpenStayFilter
	PageDown
	PageUp
	PanelLeft
	PanelRight
	Parent
	PreviewBinary
	PreviewImage
	PreviewText
	PrintPath
	PrintRelativePath
	PrintTree
	Quit
	Refresh
	SortByCount
	SortByDate
	SortBySize
	StartEndPanel
	ToggleCounts
	ToggleDates
	ToggleFiles
	ToggleGitFileInfo
	ToggleGitIgnore
	ToggleGitStatus
	ToggleHidden
	TogglePerm
	TogglePreview
	ToggleRootFs
	ToggleSizes
	ToggleTrimRoot
	TotalSearch
	UpTree
)

var internals = []struct {
	name        string
	description string
}{
	Back:              {"back", "revert to the previous state (mapped to esc)"},
	ClosePanelOK:      {"close_panel_ok", "close the panel, validating the selected path"},
	ClosePanelCancel:  {"close_panel_cancel", "close the panel, not using the selected path"},
	ClosePreview:      {"close_preview", "close the preview panel"},
	CopyPath:          {"copy_path", "copy path to system clipboard"},
	Filesystems:       {"filesystems", "list mounted filesystems"},
	Focus:             {"focus", "display the directory (mapped to enter)"},
	Help:              {"help", "display help"},
	InputPaste:        {"input_paste", "paste the clipboard content into the input"},
	LineDown:          {"line_down", "move one line down"},
	LineUp:            {"line_up", "move one line up"},
	NextMatch:         {"next_match", "select the next match"},
	NoSort:            {"no_sort", "don't sort"},
	OpenLeave:         {"open_leave", "open file or directory according to OS settings (quit)"},
	OpenPreview:       {"open_preview", "open the preview panel"},
	OpenStay:          {"open_stay", "open file or directory according to OS settings (stay)"},
	OpenStayFilter:    {"open_stay_filter", "display the directory, keeping the current pattern"},
	PageDown:          {"page_down", "scroll one page down"},
	PageUp:            {"page_up", "scroll one page up"},
	PanelLeft:         {"panel_left", "focus panel on left"},
	PanelRight:        {"panel_right", "focus panel on right"},
	Parent:            {"parent", "move to the parent directory"},
	PreviewBinary:     {"preview_binary", "preview the selection as binary"},
	PreviewImage:      {"preview_image", "preview the selection as image"},
	PreviewText:       {"preview_text", "preview the selection as text"},
	PrintPath:         {"print_path", "print path and leave"},
	PrintRelativePath: {"print_relative_path", "print relative path and leave"},
	PrintTree:         {"print_tree", "print tree and leave"},
	Quit:              {"quit", "quit"},
	Refresh:           {"refresh", "refresh tree and clear size cache"},
	SortByCount:       {"sort_by_count", "sort by count"},
	SortByDate:        {"sort_by_date", "sort by date"},
	SortBySize:        {"sort_by_size", "sort by size"},
	StartEndPanel:     {"start_end_panel", "either open or close an additional panel"},
	ToggleCounts:      {"toggle_counts", "toggle showing number of files in directories"},
	ToggleDates:       {"toggle_dates", "toggle showing last modified dates"},
	ToggleFiles:       {"toggle_files", "toggle showing files (or just folders)"},
	ToggleGitFileInfo: {"toggle_git_file_info", "toggle display of git file information"},
	ToggleGitIgnore:   {"toggle_git_ignore", "toggle use of .gitignore"},
	ToggleGitStatus:   {"toggle_git_status", "toggle showing only files relevant for git status"},
	ToggleHidden:      {"toggle_hidden", "toggle showing hidden files"},
	TogglePerm:        {"toggle_perm", "toggle showing file permissions"},
	TogglePreview:     {"toggle_preview", "open/close the preview panel"},
	ToggleRootFs:      {"toggle_root_fs", "toggle showing filesystem info on top"},
	ToggleSizes:       {"toggle_sizes", "toggle showing sizes"},
	ToggleTrimRoot:    {"toggle_trim_root", "toggle removing nodes at first level too"},
	TotalSearch:       {"total_search", "search again but on all children"},
	UpTree:            {"up_tree", "focus the parent of the current root"},
}

// Name is the canonical tag, also used as the invocation of built-in internals.
func (i Internal) Name() string {
	if i < 0 || int(i) >= len(internals) {
		return "unknown"
	}
	return internals[i].name
}

func (i Internal) String() string {
	return i.Name()
}

func (i Internal) Description() string {
	if i < 0 || int(i) >= len(internals) {
		return ""
	}
	return internals[i].description
}

// InvocationPattern is the pattern built-in internal verbs are typed with.
func (i Internal) InvocationPattern() string {
	return i.Name()
}

// ParseInternal finds the internal action with the given tag.
func ParseInternal(name string) (Internal, bool) {
	for i, info := range internals {
		if info.name == name {
			return Internal(i), true
		}
	}
	return 0, false
}

// Internals lists every internal action in declaration order.
func Internals() []Internal {
	all := make([]Internal, len(internals))
	for i := range internals {
		all[i] = Internal(i)
	}
	return all
}
