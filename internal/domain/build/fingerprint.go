package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// RendererVersion changes whenever the built-in layouts or the head output
// change shape, so that every page is rendered again.
const RendererVersion = "seohead/1"

// Fingerprint identifies every input that went into one output file.
type Fingerprint struct {
	ContentHash  string
	// MetaHash covers page metadata resolved outside the source bytes, such
	// as a date taken from the file modification time.
	MetaHash     string
	ThemeHash    string
	ConfigHash   string
	RendererHash string
	RenderHash   string
}

func (f *Fingerprint) ComputeRenderHash() {
	f.RenderHash = HashStrings(f.ContentHash, f.MetaHash, f.ThemeHash, f.ConfigHash, f.RendererHash)
}

// HashStrings hashes parts in order; each part is length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func HashStrings(parts ...string) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
