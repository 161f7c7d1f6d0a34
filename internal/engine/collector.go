package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

// ControlClient is the control interface the engine drives. The scontrol
// client satisfies it; tests substitute fakes.
type ControlClient interface {
	Ping(ctx context.Context) error
	ShowNode(ctx context.Context, name string) (model.NodeRecord, error)
	Update(ctx context.Context, action model.Action) error
}

// Collector assembles a snapshot of observed node records. Collection is
// fail-fast: the first query failure aborts the pass and no partial snapshot
// is returned, so diffing never runs against incomplete state.
type Collector struct {
	client   ControlClient
	parallel int
	events   Publisher
}

// NewCollector builds a collector. Parallelism below 2 collects sequentially
// in caller order.
func NewCollector(client ControlClient, parallel int, events Publisher) *Collector {
	if events == nil {
		events = NopPublisher{}
	}
	if parallel < 1 {
		parallel = 1
	}
	return &Collector{client: client, parallel: parallel, events: events}
}

// Collect queries every named node and returns the assembled snapshot. Nodes
// are independent reads, so they may be queried in parallel; the snapshot is
// complete or the error from the earliest failing node (in caller order) is
// returned.
func (c *Collector) Collect(ctx context.Context, nodes []string, recheck bool) (model.Snapshot, error) {
	if c.parallel <= 1 || len(nodes) <= 1 {
		return c.collectSequential(ctx, nodes, recheck)
	}
	return c.collectParallel(ctx, nodes, recheck)
}

func (c *Collector) collectSequential(ctx context.Context, nodes []string, recheck bool) (model.Snapshot, error) {
	snapshot := make(model.Snapshot, len(nodes))

	for _, node := range nodes {
		record, err := c.client.ShowNode(ctx, node)
		if err != nil {
			return nil, err
		}
		snapshot[node] = record
		c.events.Publish(NodeCollectedEvent{Node: node, Record: record, Recheck: recheck})
	}

	return snapshot, nil
}

func (c *Collector) collectParallel(ctx context.Context, nodes []string, recheck bool) (model.Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	records := make([]model.NodeRecord, len(nodes))
	errs := make([]error, len(nodes))
	pool := make(chan struct{}, c.parallel)

	var wg sync.WaitGroup
	for i, node := range nodes {
		wg.Add(1)
		go func(i int, node string) {
			defer wg.Done()

			select {
			case pool <- struct{}{}:
				defer func() { <-pool }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}

			record, err := c.client.ShowNode(ctx, node)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}

			records[i] = record
			c.events.Publish(NodeCollectedEvent{Node: node, Record: record, Recheck: recheck})
		}(i, node)
	}
	wg.Wait()

	// Cancellation makes nodes behind the failing one report ctx.Err()
	// instead of a query failure. Surface the earliest real query failure
	// in caller order so errors stay deterministic regardless of goroutine
	// scheduling.
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if firstErr == nil {
			firstErr = err
		}
		var queryErr *snoderrors.QueryError
		if errors.As(err, &queryErr) {
			firstErr = err
			break
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	snapshot := make(model.Snapshot, len(nodes))
	for i, node := range nodes {
		snapshot[node] = records[i]
	}

	return snapshot, nil
}
