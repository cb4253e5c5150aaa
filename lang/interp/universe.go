package interp

import "github.com/Earthcomputer/decode-bin/lang/values"

// declareUniverse predeclares the names spec §6 guarantees are always
// visible, regardless of what the external collaborator chooses to do with
// them: std::little_endian and std::big_endian, the two byte-order tags a
// collaborator's builtins are expected to accept.
func declareUniverse(root *Frame) {
	root.vars.Put("std::little_endian", values.Int32(0))
	root.vars.Put("std::big_endian", values.Int32(1))
}
