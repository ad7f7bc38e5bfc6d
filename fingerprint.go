package atm

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprinter computes the credential fingerprint a Session presents when Enter
// is pressed in PhaseAuthenticating. The Session is authenticated iff the
// fingerprint equals the credential captured at swipe time.
type Fingerprinter func(Session) uint64

// PhaseFingerprint is the default Fingerprinter.
// It hashes the Phase value itself and ignores the typed keys.
//
// This is a demonstration placeholder, it offers no security.
// Deployments should inject a Fingerprinter backed by a real credential verifier.
func PhaseFingerprint(s Session) uint64 { return HashPhase(s.Phase) }

// KeystrokeFingerprint hashes the typed keys, so a card swiped with
// HashKeys(pin...) is authenticated by typing pin.
func KeystrokeFingerprint(s Session) uint64 { return HashKeys(s.Keystrokes...) }

// HashPhase returns a stable fingerprint of the Phase.
func HashPhase(p Phase) uint64 {
	buf := make([]byte, 0, 10)
	buf = append(buf, 'p', byte(p.Kind))
	buf = binary.BigEndian.AppendUint64(buf, p.Credential)
	return xxhash.Sum64(buf)
}

// HashKeys returns a stable fingerprint of the keys in order.
func HashKeys(keys ...Key) uint64 {
	buf := make([]byte, 0, len(keys)+1)
	buf = append(buf, 'k')
	for _, k := range keys {
		buf = append(buf, byte(k))
	}
	return xxhash.Sum64(buf)
}
