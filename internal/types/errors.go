// README: Error taxonomy shared by every outbound client and the planner.
package types

import "errors"

var (
	// ErrUpstream covers network failures and non-2xx answers from any provider.
	ErrUpstream = errors.New("upstream error")
	// ErrNotFound is returned when a place or airport lookup has no match.
	ErrNotFound = errors.New("not found")
	// ErrParse is returned when a provider or the LLM answers with a payload we cannot decode.
	ErrParse = errors.New("parse error")
	// ErrConfig marks missing or invalid credentials; only raised at construction.
	ErrConfig = errors.New("config error")
)
