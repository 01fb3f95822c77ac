// Package formats provides parsers for graphics capture export formats.
//
// PIX (pix.go) is the CSV vertex dump written by frame capture tools: one
// row per vertex occurrence of an indexed draw, in traversal order.
package formats
