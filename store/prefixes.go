package store

// Storage prefices
const (
	PresaleStatePrefix = "ps-"
	GlobalStatePrefix  = "gs-"
	StakeAccountPrefix = "sk-"
	StageTablePrefix   = "st-"
)
