// Package protocol implements the dustdb wire protocol.
//
// The protocol is newline-delimited UTF-8 text over a byte stream. Each
// connection carries exactly one command line and receives exactly one
// response line:
//
//	CREATE <pile> <hex-data>    ->  0 <uuid>
//	PING                        ->  0
//	FIND <pile> <field> <cmp>   ->  0 <hex-of-record-or-empty>
//
// Failures produce "1 Error: <message>". Record payloads are hex encoded on
// the wire so that free-form JSON (spaces, newlines) survives line framing;
// Encode and Decode implement that codec.
//
// This package is pure serialization and parsing. It is shared by the server
// (parse requests, encode responses) and the client (encode requests, parse
// responses) and imposes no transport or storage decisions on either.
package protocol
