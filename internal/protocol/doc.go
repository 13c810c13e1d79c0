// Package protocol owns the wire primitives of the panda device service.
//
// Ownership boundary:
// - big-endian integer, float, bool, string and blob codecs
// - the negative-length error sentinel
// - error taxonomy shared by every layer above the transport
//
// All integers are big-endian. Strings carry a signed 32-bit length so the
// service can replace any documented string field with an error code plus a
// message; blobs and counts carry an unsigned length.
package protocol
