package ports

import "delvelife/internal/domain/actor"

type SimMetrics interface {
	RecordCommand(kind string, accepted bool)
	RecordRunStarted()
	RecordRunFinished(aborted bool)
	RecordNeedSatisfied(kind actor.NeedKind)
}
