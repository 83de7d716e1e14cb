package intent

import "strings"

// commandKind is a task-management verb recognized by the dispatcher.
type commandKind int

const (
	commandNone commandKind = iota
	commandList
	commandComplete
	commandDelete
)

// listCues are the phrases that ask for the task listing.
var listCues = []string{
	"show tasks",
	"view tasks",
	"list tasks",
	"show my tasks",
	"view my tasks",
	"list my tasks",
}

const (
	completeCue = "mark task completed "
	deleteCue   = "delete task "
)

// taskCommand is a dispatched task-management request.
type taskCommand struct {
	title string
	kind  commandKind
}

// dispatchCommand matches cues in priority order: list, complete, delete.
// For complete and delete the title is the text after the first cue occurrence.
// A cue ending the input counts, so "delete task" yields a blank title.
func dispatchCommand(lower string) taskCommand {
	for _, cue := range listCues {
		if strings.Contains(lower, cue) {
			return taskCommand{kind: commandList}
		}
	}

	padded := lower + " "
	if _, after, ok := strings.Cut(padded, completeCue); ok {
		return taskCommand{kind: commandComplete, title: strings.TrimSpace(after)}
	}
	if _, after, ok := strings.Cut(padded, deleteCue); ok {
		return taskCommand{kind: commandDelete, title: strings.TrimSpace(after)}
	}
	return taskCommand{kind: commandNone}
}
