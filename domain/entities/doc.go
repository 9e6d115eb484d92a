// Package entities provides the value types that cross the contract boundary:
// addresses, 128-bit integers, contract results, events, block headers,
// region descriptors and migration metadata.
//
// Entities carry no wire logic beyond their fixed-size binary forms; the
// length-prefixed encodings live in package codec.
package entities
