package hash

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// OpNames is the 58 canonical operation names, fixed order, matching the
// position of each fingerprint in OpFeats.
var OpNames = [58]string{
	"getattr", "inst", "stepout", "geq", "copy", "inv", "arr_popleft", "grwinattr", "zstr", "clear",
	"eq", "vm_factory", "assign", "typeof", "outcall", "new", "inst_arr", "stop", "swap", "check_err",
	"throw", "contains", "setattr", "add", "n2list", "chobj", "getobj", "refeq", "stepin", "group",
	"wincall", "drop", "undefined", "jump", "mul", "je", "ge", "rshift", "mod", "delattr",
	"false", "get_global", "bitor", "sub", "xor", "grobj", "new_attr", "true", "getobj2", "bitand",
	"urshift", "realloc", "tolist", "div", "grgetattr", "lshift", "null", "concat",
}

// OpFeats holds the 58 MD5 fingerprints, embedded verbatim, one per
// canonical operation in the same order as OpNames.
var OpFeats = [58]string{
	"5ceb04a17d2ccd243a3cd8d43d58412f", "2c64a078cb8c4b856fdc70a609852c84", "22baa62b15474dc170105ea16907be4f", "a0d2ef60799df6195af8233faf1d4405",
	"821662fd6eed2bc7baf4ec9cf305ed3d", "86bfa469c728aef498dc0b31acca50d5", "a171259d3583f1d528c527cca37181c6", "2e457be74b78687bda17467657427c44",
	"36daeb76f0369182d47bc0854cd62f3e", "7861d746f3115dc52985788bad85f9f4", "d5582f0d77825e3dd4b5de1b58c4367c", "cad016c2b4b99c28c26ab19975ee0ed9",
	"85aeeab3938f54b19b45f3e95802c185", "46be5ad0b74da7c1025e229ee1b86443", "ba98404956c3877209b59858a84090e9", "f117180b06547c4efbcb2bd2b2164849",
	"19d1047281ae4901d0e08885458ceb5a", "e6803eb42dc05fc3e04283902865287c", "0f935762ce5225379c0f4b8b20698026", "854175af0e5ea31a14afd3b34a8faa80",
	"2732918292df330ac7462015dff8969c", "d378d1594b18890e237b5d472818e309", "26df6ca6775d9d0d1b524e4fe7ef1d51", "35bbb1a74b0380e46a199abe999bf303",
	"a8ed98953190027b3dad5ccb0f3f73be", "c2b8e8732ecf925e116f1017a4fcfebf", "acaa0c50323b6fd6e8b9b9395f4ad30b", "9557e2616caac44899f6612e32fa5cd2",
	"9a3f40351dbad181dc027c596f23df4c", "021111bd795ea2b9b7e44275fcda3fe5", "728702d0440f2d3a5c425d736fd6b2a6", "dacd0c2abe15333ad9d5aaf9e550da71",
	"7211294be669b58b0f3da4940a35dcce", "d8b6e1a347e3a17c7719e92a799a0820", "a14cc4c1bd40951d1052c2c4c8353d13", "18f2d14a9d67ef3504777a3be8ff7532",
	"ac70343d82c97644522ed31a98649989", "e41fa5e46c2d94d4d7b54437e71f5862", "9c7676e1872be2fb9bf02aaefa78e066", "a9e27183565a9854cf6e593b2572beec",
	"4509710e44dc7c0bae5b39ee74b188c5", "57270c2716f715468eaf0429965cf123", "61663d46238a47351f4ff7e24326360c", "3b20fb198a1f87da243bf27aadb19805",
	"9c28d03d5a01e0360e830168b47ec0da", "2d1bb184a9a54c223b38ac23340bdd23", "1691f2ef2945d750f686ceefda8ee5be", "a7c235198def717b198ceb39d993ede9",
	"80db3dff6284dfb62b88c7629af22afd", "d2d4c0d054580286a463d79d0881644a", "e66f61b8e3792cb44c2ae0be71173d45", "0bbd3879b0867fa76722b7ca001cb338",
	"96d30e9496fccd6a9ddcf45a35316e45", "af29f37ff067adb9398e5b9b42b8f7b7", "50cd82d43ac8eaa4ff4017509272f65b", "c00fc6652cacebbf04dc3958a058150c",
	"2598bc9255deafbb48adf287d5d3b12a", "13274e03e106918b096bc5fd4c5423ba",
}

var featIndex map[string]int

func init() {
	featIndex = make(map[string]int, len(OpFeats))
	for i, f := range OpFeats {
		featIndex[f] = i
	}
}

// Index returns the canonical opcode index for a handler's MD5 fingerprint.
func Index(fingerprint string) (int, bool) {
	i, ok := featIndex[fingerprint]
	return i, ok
}

// Fingerprint computes the MD5 hex digest of a handler body's canonical
// shape string, as produced by HashList(statements, ctx, ";").
func Fingerprint(shape string) string {
	sum := md5.Sum([]byte(shape))
	return hex.EncodeToString(sum[:])
}

// IdentifyHandler canonicalizes a handler's statement list and resolves it
// to a canonical opcode index, returning an error naming the computed
// fingerprint if it matches none of the 58 known ones.
func IdentifyHandler(body []Node, ctx *Context) (int, error) {
	shape := HashList(body, ctx, ";")
	fp := Fingerprint(shape)
	idx, ok := Index(fp)
	if !ok {
		return 0, fmt.Errorf("hash: unrecognized handler fingerprint %s", fp)
	}
	return idx, nil
}
