package playgrounds

import (
	hashids "github.com/speps/go-hashids/v2"
)

// Share codes are short opaque slugs derived from the numeric id, used in
// shareable links and as the stable key for generated fallback images.
// They are not a security measure, only a way to keep raw sequence ids out
// of public URLs.

const shareCodeMinLength = 6

var shareCoder = func() *hashids.HashID {
	hd := hashids.NewData()
	hd.Salt = "parcacote-playgrounds"
	hd.MinLength = shareCodeMinLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(err)
	}
	return h
}()

// ShareCode encodes a playground id into its public slug.
func ShareCode(id int64) string {
	code, err := shareCoder.EncodeInt64([]int64{id})
	if err != nil {
		return ""
	}
	return code
}

// DecodeShareCode resolves a public slug back to a playground id.
func DecodeShareCode(code string) (int64, bool) {
	ids, err := shareCoder.DecodeInt64WithError(code)
	if err != nil || len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}
