package mcts

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// errQueueOverflow is raised if the pending queue is ever asked to hold more
// than size*size entries; with at most one leaf enqueued per simulation and
// no more than size*size moves ever existing, this can only happen from an
// engine bug.
var errQueueOverflow = errors.New("mcts: pending queue exceeded size*size capacity")

// checkVirtualLossCleared walks the tree rooted at node and returns an
// aggregated error naming every node whose virtual-loss counter is not
// zero. Called once per Search, after the final dispatch; a non-nil result
// means the descent/backup bookkeeping has a bug and is a fatal
// implementation error, not a recoverable condition.
func checkVirtualLossCleared(node *Node) error {
	var result *multierror.Error
	var walk func(n *Node, path string)
	walk = func(n *Node, path string) {
		if n == nil {
			return
		}
		if n.vlossCnt != 0 {
			result = multierror.Append(result, errors.Errorf(
				"node at %s has vloss_cnt=%d after search", path, n.vlossCnt))
		}
		for i, c := range n.children {
			if c != nil {
				walk(c, fmt.Sprintf("%s/%d", path, i))
			}
		}
	}
	walk(node, "root")
	return result.ErrorOrNil()
}
