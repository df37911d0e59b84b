// ABOUTME: Narration payload decoding package
// ABOUTME: Provides base64 unwrapping and the 16-bit PCM interpreter
// Package decode turns a narration payload into a playable buffer.
//
// A payload is base64 text wrapping headerless little-endian signed 16-bit
// PCM. Decoding happens in two pure steps:
//
//   - Base64 reverses the text encoding and rejects malformed input
//   - PCM reshapes the bytes into per-channel normalized samples
//
// Example:
//
//	buf, err := decode.Narration(payload)
//	if errors.Is(err, decode.ErrMalformedPayload) {
//	    // report and stay idle
//	}
package decode
