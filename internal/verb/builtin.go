package verb

import (
	"verbtree/pkg/types"
)

func internal(action Internal) *Builder {
	return NewInternal(action)
}

func internalBang(action Internal) *Builder {
	return NewInternalBang(action)
}

func external(invocation, command string, mode ExternalMode) *Builder {
	return NewExternal(invocation, command, mode)
}

// Builtins returns the verbs available without any configuration. They may
// still be overridden by user verbs. Later entries win key and shortcut
// conflicts, so open_leave comes before cd: alt-enter opens anything, except
// directories which cd takes over.
func Builtins() []*Verb {
	builders := []*Builder{
		internal(Back),
		internal(OpenLeave).
			WithKey(types.KeyAltEnter).
			WithShortcut("ol"),
		external("cd", "cd {directory}", LeaveToParentShell).
			WithStype(types.Directory).
			WithKey(types.KeyAltEnter).
			WithDescription("change directory and quit"),
		internal(OpenPreview),
		internal(ClosePreview),
		internal(TogglePreview),
		internal(PreviewImage),
		internal(PreviewText),
		internal(PreviewBinary),
		internal(ClosePanelOK),
		internal(ClosePanelCancel).
			WithKey(types.KeyBackTab).
			WithControlKey('w'),
		external("copy {newpath:path-from-parent}", "cp -r {file} {newpath:path-from-parent}", StayInApp).
			WithShortcut("cp"),
		internal(CopyPath).
			WithAltKey('c'),
		external("copy_to_panel", "cp -r {file} {other-panel-directory}", StayInApp).
			WithShortcut("cpp"),
		// focus is also what enter does on directories, ctrl-f is for
		// focusing a file's parent
		internal(Focus).
			WithControlKey('f'),
		internal(Help).
			WithKey(types.KeyF1).
			WithShortcut("?"),
		internal(InputPaste).
			WithControlKey('v'),
		internal(LineDown).WithKey(types.KeyDown),
		internal(LineUp).WithKey(types.KeyUp),
		external("mkdir {subpath}", "mkdir -p {subpath:path-from-directory}", StayInApp).
			WithShortcut("md"),
		external("move {newpath:path-from-parent}", "mv {file} {newpath:path-from-parent}", StayInApp).
			WithShortcut("mv"),
		external("move_to_panel", "mv {file} {other-panel-directory}", StayInApp).
			WithShortcut("mvp"),
		internalBang(StartEndPanel).
			WithControlKey('p'),
		internal(NextMatch).
			WithKey(types.KeyTab),
		internal(NoSort).WithShortcut("ns"),
		internal(OpenStay).
			WithKey(types.KeyEnter).
			WithShortcut("os"),
		internal(OpenStayFilter).WithShortcut("osf"),
		internal(Parent).WithShortcut("p"),
		internal(PageDown).WithKey(types.KeyPageDown),
		internal(PageUp).WithKey(types.KeyPageUp),
		internal(PanelLeft).WithKey(types.KeyCtrlLeft),
		internal(PanelRight).WithKey(types.KeyCtrlRight),
		internal(PrintPath).WithShortcut("pp"),
		internal(PrintRelativePath).WithShortcut("prp"),
		internal(PrintTree).WithShortcut("pt"),
		internal(Quit).
			WithControlKey('c').
			WithControlKey('q').
			WithShortcut("q"),
		internal(Refresh).WithKey(types.KeyF5),
		internal(SortByCount).WithShortcut("sc"),
		internal(SortByDate).WithShortcut("sd"),
		internal(SortBySize).WithShortcut("ss"),
		external("rm", "rm -rf {file}", StayInApp),
		internal(ToggleCounts).WithShortcut("counts"),
		internal(ToggleDates).WithShortcut("dates"),
		internal(ToggleFiles).WithShortcut("files"),
		internal(ToggleGitIgnore).WithShortcut("gi"),
		internal(ToggleGitFileInfo).WithShortcut("gf"),
		internal(ToggleGitStatus).WithShortcut("gs"),
		internal(ToggleRootFs).WithShortcut("rfs"),
		internal(ToggleHidden).WithShortcut("h"),
		internal(ToggleSizes).WithShortcut("sizes"),
		internal(ToggleTrimRoot),
		internal(TotalSearch).WithControlKey('s'),
		internal(UpTree).WithShortcut("up"),
	}
	builders = append(builders, platformBuiltins()...)

	verbs := make([]*Verb, 0, len(builders))
	for _, b := range builders {
		verbs = append(verbs, b.MustBuild())
	}
	return verbs
}
