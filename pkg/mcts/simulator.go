package mcts

// simulate performs one PUCT descent from the root: select down to a leaf,
// then either back it up immediately (terminal), enqueue it for batch
// evaluation (freshly expanded), or synchronize the dispatcher when the
// descent catches up to a leaf some earlier simulation already enqueued but
// hasn't been backed up yet.
//
// Each step strictly increases depth; the terminal and enqueue branches end
// the descent outright, and the synchronize branch cannot loop forever
// because DispatchBatchInference evaluates every queued leaf, so the next
// iteration never re-enters synchronize for the same node.
func (e *Engine) simulate() {
	current := e.root
	current.incVLoss()

	justExpanded := false

	for {
		switch {
		case current.terminal:
			e.BackupFromLeaf(current)
			return

		case !current.evaluated && justExpanded:
			if e.pending.len() >= e.batchSize {
				e.DispatchBatchInference()
			}
			e.pending.push(current)
			return

		case !current.evaluated:
			// Enqueued by an earlier simulation, not yet backed up: drain
			// the queue so current becomes evaluated, then re-enter the
			// loop (the next iteration takes the selection branch below).
			e.DispatchBatchInference()

		default:
			x, y := current.Select(e.cpuct, e.vloss)
			justExpanded = current.Expand(x, y)
			current = current.Child(x, y)
			current.incVLoss()
			continue
		}

		justExpanded = false
	}
}
