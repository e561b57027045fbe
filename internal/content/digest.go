package content

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns a BLAKE2b-256 hex digest of the registry contents.
// The generation is not part of the digest.
func (r *Registry) Digest() string {
	h, _ := blake2b.New256(nil)
	var buf [4]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint32(buf[:], uint32(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeInt := func(v int32) {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		h.Write(buf[:])
	}
	writeReqs := func(reqs []Requirement) {
		if reqs == nil {
			writeInt(-1)
			return
		}
		writeInt(int32(len(reqs)))
		for _, req := range reqs {
			writeString(r.ItemName(req.Resource))
			writeInt(req.Amount)
		}
	}

	for _, it := range r.items {
		writeString(it.Name)
		writeString(it.Kind)
		writeInt(int32(it.BuildMenu))
	}
	for _, m := range r.menus {
		writeString(m.Name)
		writeInt(int32(len(m.Pieces)))
		for _, p := range m.Pieces {
			writeInt(int32(p))
		}
	}
	for _, p := range r.pieces {
		writeString(p.Name)
		writeReqs(p.Requirements)
	}
	for _, rc := range r.recipes {
		writeString(rc.Name)
		writeString(rc.Station)
		writeReqs(rc.Requirements)
	}
	return hex.EncodeToString(h.Sum(nil))
}
