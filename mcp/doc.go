// Package mcp implements a Mitsubishi MELSEC Communication (MC) protocol client and
// server for the 3E frame over TCP. It covers device address parsing for both the
// native Mitsubishi dialect and the Keyence KV dialect, the 3E wire codec, a typed
// value layer on top of the raw word/bit calls, and a Service contract servers can
// implement to answer requests.
package mcp
