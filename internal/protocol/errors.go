package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Rule/action layer.
	ErrBadRequest      = "E_BAD_REQUEST"
	ErrUnknownID       = "E_UNKNOWN_ID"
	ErrOutOfRange      = "E_OUT_OF_RANGE"
	ErrUndefinedEffect = "E_UNDEFINED_EFFECT"
	ErrUnknownDrop     = "E_UNKNOWN_DROP"
	ErrUnimplemented   = "E_UNIMPLEMENTED"
	ErrContainersFull  = "E_CONTAINERS_FULL"
	ErrBlocked         = "E_BLOCKED"
	ErrInternal        = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrUnknownID:       {},
	ErrOutOfRange:      {},
	ErrUndefinedEffect: {},
	ErrUnknownDrop:     {},
	ErrUnimplemented:   {},
	ErrContainersFull:  {},
	ErrBlocked:         {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
