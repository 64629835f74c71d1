package board

import (
	"context"
	"sync"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"

	"go.uber.org/zap"
)

type TaskGateway interface {
	List(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (domain.Task, error)
	Remove(ctx context.Context, id string) (string, error)
}

// Controller owns the board state. Card mutations round-trip through the
// gateway first and are applied locally only once the server confirmed them.
type Controller struct {
	gateway TaskGateway
	logger  *zap.Logger

	mu    sync.RWMutex
	state State
	// generation discards list responses superseded by a newer Refresh.
	generation uint64
	// mutations counts confirmed local patches; a list fetched across one is stale.
	mutations uint64
	seen      uint64
}

// maxRefetches bounds how often Refresh retries a list that raced a mutation.
const maxRefetches = 3

func NewController(gateway TaskGateway, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		gateway: gateway,
		logger:  logger,
		state:   State{}.Loading(),
	}
}

// Refresh enters the loading phase and replaces the list with a fresh fetch.
// A list that was in flight while Update or Remove landed is fetched again
// so the confirmed patch is not rolled back.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.state = c.state.Loading()
	c.mu.Unlock()

	for attempt := 1; ; attempt++ {
		c.mu.RLock()
		mutations := c.mutations
		c.mu.RUnlock()

		tasks, err := c.gateway.List(ctx)

		c.mu.Lock()
		if generation != c.generation {
			c.mu.Unlock()
			return err
		}
		if err != nil {
			c.logger.Warn("failed to load tasks", zap.Error(err))
			c.state = c.state.Failed()
			c.mu.Unlock()
			return err
		}
		if mutations != c.mutations && attempt < maxRefetches {
			c.mu.Unlock()
			c.logger.Debug("task list raced a mutation, fetching again", zap.Int("attempt", attempt))
			continue
		}
		c.state = c.state.Loaded(tasks)
		c.mu.Unlock()
		c.logger.Debug("tasks loaded", zap.Int("count", len(tasks)))
		return nil
	}
}

// Sync reloads when the signal moved since the last call and reports whether it did.
func (c *Controller) Sync(ctx context.Context, signal *RefreshSignal) (bool, error) {
	value := signal.Value()

	c.mu.Lock()
	if value == c.seen {
		c.mu.Unlock()
		return false, nil
	}
	c.seen = value
	c.mu.Unlock()

	return true, c.Refresh(ctx)
}

// Update sends the patch and, on success, swaps the returned record into the list.
// A failure leaves the state untouched.
func (c *Controller) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (domain.Task, error) {
	task, err := c.gateway.Update(ctx, id, req)
	if err != nil {
		c.logger.Warn("failed to update task", zap.String("task_id", id), zap.Error(err))
		return domain.Task{}, err
	}

	c.mu.Lock()
	c.mutations++
	c.state = c.state.Patched(task)
	c.mu.Unlock()
	return task, nil
}

func (c *Controller) Remove(ctx context.Context, id string) error {
	if _, err := c.gateway.Remove(ctx, id); err != nil {
		c.logger.Warn("failed to delete task", zap.String("task_id", id), zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.mutations++
	c.state = c.state.Removed(id)
	c.mu.Unlock()
	return nil
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Tasks = cloneTasks(s.Tasks)
	return s
}

func (c *Controller) Buckets() Buckets {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Partition(c.state.Tasks)
}
