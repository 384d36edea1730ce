package node

import "github.com/google/uuid"

// ParseInfo is optional per-rule metadata attached to an AST under the
// "parseinfo" key (spec.md §3).
type ParseInfo struct {
	Buffer   uuid.UUID
	Rule     string
	StartPos int
	EndPos   int
}

// ParseInfoKey is the AST key under which ParseInfo is attached.
const ParseInfoKey = "parseinfo"
