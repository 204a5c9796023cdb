package simulation

import (
	"github.com/mountain-software-jp/trail-simulator/log"
	"github.com/mountain-software-jp/trail-simulator/pkg/model"
)

// applyCutoffs retires every active runner that has missed a checkpoint
// deadline. A runner's personal deadline is the cutoff time shifted by its
// wave start offset, so later waves get the same elapsed-time allowance.
// Runs before movement resolution; once DNF, a runner's position is never
// written again.
func (e *Engine) applyCutoffs(now float64) {
	for _, cutoff := range e.cutoffs {
		if now < cutoff.TimeSec {
			continue
		}
		for r := range e.runners {
			if e.statuses[r] != model.StatusActive {
				continue
			}
			deadline := cutoff.TimeSec + e.runners[r].StartOffsetSec
			if now >= deadline && e.positions[r] < cutoff.DistanceM {
				e.statuses[r] = model.StatusDNF
				e.logger.Debug("runner timed out",
					log.Int("runner", e.runners[r].ID),
					log.Float64("positionM", e.positions[r]),
					log.Float64("cutoffM", cutoff.DistanceM),
					log.Float64("deadlineSec", deadline))
			}
		}
	}
}
