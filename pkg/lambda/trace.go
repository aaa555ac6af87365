package lambda

import (
	"fmt"
	"strings"

	"github.com/edwingeng/deque"
	"github.com/samber/lo"
)

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleErasure
	RuleDuplication
)

func (r RuleKind) String() string {
	switch r {
	case RuleBeta:
		return "beta"
	case RuleErasure:
		return "erase"
	case RuleDuplication:
		return "dup"
	default:
		return "unknown"
	}
}

func ruleFor(uses int) RuleKind {
	switch {
	case uses == 0:
		return RuleErasure
	case uses == 1:
		return RuleBeta
	default:
		return RuleDuplication
	}
}

// TraceEvent records one beta-reduction.
type TraceEvent struct {
	Step        uint64
	Rule        RuleKind
	Binder      Var
	Copies      int
	Fingerprint uint64 // of the whole term after the step
}

func (e TraceEvent) String() string {
	return fmt.Sprintf("#%d %s %s copies=%d fp=%016x", e.Step, e.Rule, e.Binder.String(), e.Copies, e.Fingerprint)
}

// FormatTrace renders events one per line.
func FormatTrace(events []TraceEvent) string {
	return strings.Join(lo.Map(events, func(e TraceEvent, _ int) string { return e.String() }), "\n")
}

// EnableTrace keeps the last capacity reduction events.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = deque.NewDeque()
	r.traceCap = capacity
}

func (r *Reducer) DisableTrace() {
	r.traceBuf = nil
	r.traceCap = 0
}

// TraceSnapshot returns the recorded events, oldest first.
func (r *Reducer) TraceSnapshot() []TraceEvent {
	if r.traceBuf == nil {
		return nil
	}
	n := r.traceBuf.Len()
	res := make([]TraceEvent, 0, n)
	for i := 0; i < n; i++ {
		ev := r.traceBuf.PopFront()
		res = append(res, ev.(TraceEvent))
		r.traceBuf.PushBack(ev)
	}
	return res
}

func (r *Reducer) tracing() bool {
	return r.traceBuf != nil
}

func (r *Reducer) recordTrace(ev TraceEvent) {
	if r.traceBuf == nil {
		return
	}
	r.traceBuf.PushBack(ev)
	for r.traceBuf.Len() > r.traceCap {
		r.traceBuf.PopFront()
	}
}
