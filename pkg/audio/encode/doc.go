// ABOUTME: Audio encoder package producing narration payloads
// ABOUTME: Provides Encoder interface and the 16-bit PCM / base64 encoders
// Package encode is the inverse of package decode.
//
// It turns a playable buffer back into interleaved little-endian 16-bit PCM
// and, optionally, into the base64 text form lessons store their narration
// in. The authoring tool and tests use it to build payloads.
//
// Example:
//
//	payload := encode.Base64(buf)
//	buf2, err := decode.Narration(payload)
package encode
