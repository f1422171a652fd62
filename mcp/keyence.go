package mcp

import (
	"strconv"
	"strings"
)

// kvRule names how a Keyence KV address is rewritten into its Mitsubishi-native
// equivalent before being split/looked up by address.go.
type kvRule int

const (
	kvIdentity kvRule = iota
	kvHexRepack
	kvDecimalRepack
	kvDecimalToHex
	kvRenumberXY
)

type kvEntry struct {
	prefix string
	native string
	rule   kvRule
}

// kvTable is the Keyence KV dialect map (spec.md §3.1/§6.4), 13 entries, two-letter
// prefixes listed first for the same longest-prefix-first reason as deviceTable.
var kvTable = []kvEntry{
	{"MR", "M", kvDecimalRepack},
	{"LR", "L", kvDecimalRepack},
	{"DM", "D", kvIdentity},
	{"FM", "R", kvIdentity},
	{"ZF", "ZR", kvDecimalToHex},
	{"R", "X", kvHexRepack},
	{"B", "B", kvIdentity},
	{"M", "M", kvIdentity},
	{"D", "D", kvIdentity},
	{"F", "R", kvIdentity},
	{"L", "L", kvIdentity},
	{"X", "X", kvRenumberXY},
	{"Y", "Y", kvRenumberXY},
}

func findKV(prefix string) (kvEntry, bool) {
	for _, e := range kvTable {
		if e.prefix == prefix {
			return e, true
		}
	}
	return kvEntry{}, false
}

func splitKV(address string) (prefix, rest string, ok bool) {
	best := ""
	for _, e := range kvTable {
		if len(e.prefix) <= len(best) {
			continue
		}
		if strings.HasPrefix(address, e.prefix) && len(address) > len(e.prefix) {
			best = e.prefix
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, address[len(best):], true
}

// RewriteKeyence rewrites a Keyence KV address (e.g. "R100") into its Mitsubishi-
// native equivalent (e.g. "X10") so it can be fed to the same encoder the native
// dialect uses.
//
// The hex/decimal repack rules below split the decimal address N into N = a*100+b
// with b < 16, and compute value = a*16+b - the positional-base-16 construction
// spec.md §4.1 describes as "format as hex digits" - then render that value in hex
// (for the Hex rule) or decimal (for the Decimal rule) text. Note this makes
// RewriteKeyence("R100") produce "X10" (value 0x10), not the "0xA0" spec.md §8's
// worked example states: applying the table's Hex-repack rule to 100 (a=1, b=0)
// gives 0x10, matching both the original reference implementation's own inline
// comment ("R100 converts to X10") and ordinary KV addressing convention. 0xA0 is
// what the *different* X/Y-renumber rule produces from "100" (drop the last digit
// "0" -> "10", decimal 10 -> hex "A", reappend "0" -> "A0"), so the worked example
// appears to have applied the wrong table rule to its own input; this
// implementation follows the rule that the table actually assigns to "R".
func RewriteKeyence(address string) (string, error) {
	prefix, rest, ok := splitKV(address)
	if !ok {
		return "", newAddressErr("unrecognized Keyence device prefix in \""+address+"\"", nil)
	}
	entry, ok := findKV(prefix)
	if !ok {
		return "", newAddressErr("unrecognized Keyence device prefix \""+prefix+"\"", nil)
	}

	switch entry.rule {
	case kvIdentity:
		return entry.native + rest, nil

	case kvHexRepack, kvDecimalRepack:
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return "", newAddressErr("invalid Keyence device offset \""+rest+"\"", err)
		}
		b := n % 100
		a := (n - b) / 100
		if b >= 16 {
			return "", newAddressErr("Keyence device offset "+rest+" has an out-of-range low component", nil)
		}
		value := a*16 + b
		if entry.rule == kvHexRepack {
			return entry.native + strconv.FormatUint(value, 16), nil
		}
		return entry.native + strconv.FormatUint(value, 10), nil

	case kvDecimalToHex:
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return "", newAddressErr("invalid Keyence device offset \""+rest+"\"", err)
		}
		return entry.native + strconv.FormatUint(n, 16), nil

	case kvRenumberXY:
		renumbered, err := renumberXY(rest)
		if err != nil {
			return "", err
		}
		return entry.native + renumbered, nil

	default:
		return "", newAddressErr("unhandled Keyence rewrite rule", nil)
	}
}

// renumberXY implements the X/Y renumbering rule: drop the last digit, convert the
// remaining decimal digits to hex, and reappend the last digit unchanged.
func renumberXY(number string) (string, error) {
	if len(number) <= 1 {
		return number, nil
	}
	remainder := number[:len(number)-1]
	last := number[len(number)-1:]
	p, err := strconv.ParseUint(remainder, 10, 32)
	if err != nil {
		return "", newAddressErr("invalid X/Y device offset \""+number+"\"", err)
	}
	return strings.ToUpper(strconv.FormatUint(p, 16)) + last, nil
}
