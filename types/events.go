package types

import (
	log "github.com/sirupsen/logrus"
)

type EventKind string

const (
	EventPresaleInitialized EventKind = "presale_initialized"
	EventPresaleEnded       EventKind = "presale_ended"
	EventPaymentAccepted    EventKind = "payment_accepted"
	EventNativeDeposited    EventKind = "native_deposited"
	EventStaked             EventKind = "staked"
	EventUnstaked           EventKind = "unstaked"
	EventRewardsClaimed     EventKind = "rewards_claimed"
	EventLiquidityLocked    EventKind = "liquidity_locked"
	EventTokensBurned       EventKind = "tokens_burned"
	EventRewardPoolRefilled EventKind = "reward_pool_refilled"
	EventParametersUpdated  EventKind = "parameters_updated"
	EventFundsWithdrawn     EventKind = "funds_withdrawn"
	EventStageUpdated       EventKind = "stage_updated"
)

// Event is emitted after an operation commits. Attrs are flat strings so
// sinks can forward them anywhere without knowing record shapes.
type Event struct {
	Kind  EventKind
	Attrs map[string]string
}

type EventSink interface {
	Emit(ev Event)
}

// LogSink writes events to the process log.
type LogSink struct{}

func (LogSink) Emit(ev Event) {
	fields := make(log.Fields, len(ev.Attrs)+1)
	for k, v := range ev.Attrs {
		fields[k] = v
	}
	fields["event"] = string(ev.Kind)
	log.WithFields(fields).Info("event emitted")
}

// NopSink discards events; tests that only care about state use it.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// MemSink records events in order for assertions.
type MemSink struct {
	Events []Event
}

func (m *MemSink) Emit(ev Event) {
	m.Events = append(m.Events, ev)
}
