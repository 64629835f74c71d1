// Package board holds the client-side view of the task board: the fetched
// list, its load phase, and the status buckets the columns are drawn from.
package board

import (
	"taskboard/internal/core/domain"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// MsgLoadFailed replaces the board when the list cannot be fetched.
const MsgLoadFailed = "Failed to load tasks"

// State is an immutable snapshot. Transitions return a new value and never
// touch the receiver's slice.
type State struct {
	Phase Phase
	Tasks []domain.Task
	Err   string
}

func (s State) Loading() State {
	return State{Phase: PhaseLoading, Tasks: s.Tasks}
}

// Loaded replaces the whole list.
func (s State) Loaded(tasks []domain.Task) State {
	return State{Phase: PhaseReady, Tasks: cloneTasks(tasks)}
}

func (s State) Failed() State {
	return State{Phase: PhaseError, Tasks: s.Tasks, Err: MsgLoadFailed}
}

// Patched swaps in task for the element with the same ID. Unknown IDs leave the list as is.
func (s State) Patched(task domain.Task) State {
	tasks := cloneTasks(s.Tasks)
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			break
		}
	}
	s.Tasks = tasks
	return s
}

func (s State) Removed(id string) State {
	tasks := make([]domain.Task, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	s.Tasks = tasks
	return s
}

// Find returns the task with the given ID from the current list.
func (s State) Find(id string) (domain.Task, bool) {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

type Buckets struct {
	ToDo       []domain.Task
	InProgress []domain.Task
	Done       []domain.Task
	// Other holds records whose status is none of the known ones.
	Other []domain.Task
}

// Columns returns the status buckets in board order.
func (b Buckets) Columns() [][]domain.Task {
	return [][]domain.Task{b.ToDo, b.InProgress, b.Done}
}

// Partition splits tasks by status, keeping list order inside each bucket.
func Partition(tasks []domain.Task) Buckets {
	var b Buckets
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusTodo:
			b.ToDo = append(b.ToDo, task)
		case domain.TaskStatusInProgress:
			b.InProgress = append(b.InProgress, task)
		case domain.TaskStatusDone:
			b.Done = append(b.Done, task)
		default:
			b.Other = append(b.Other, task)
		}
	}
	return b
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
