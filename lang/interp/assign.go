package interp

import (
	"github.com/Earthcomputer/decode-bin/lang/token"
	"github.com/Earthcomputer/decode-bin/lang/values"
)

// assignOps dispatches a compound-assignment operator directly to a
// (current, rhs) -> updated-value function, built once rather than
// re-deriving the base operator on every assignment.
var assignOps = map[token.Kind]func(cur, rhs values.Value) (values.Value, error){
	token.PLUSEQ:     func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.PLUS, cur, rhs) },
	token.MINUSEQ:    func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.MINUS, cur, rhs) },
	token.STAREQ:     func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.STAR, cur, rhs) },
	token.SLASHEQ:    func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.SLASH, cur, rhs) },
	token.PERCENTEQ:  func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.PERCENT, cur, rhs) },
	token.AMPEQ:      func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.AMP, cur, rhs) },
	token.PIPEEQ:     func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.PIPE, cur, rhs) },
	token.CARETEQ:    func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.CARET, cur, rhs) },
	token.SHLEQ:      func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.SHL, cur, rhs) },
	token.SHREQ:      func(cur, rhs values.Value) (values.Value, error) { return values.Binary(token.SHR, cur, rhs) },
}
