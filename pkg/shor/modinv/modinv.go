package modinv

import "github.com/hsiuhsiu/shor-go/pkg/shor"

// Inverse returns x in [0, b) with a*x ≡ 1 (mod b). It returns
// shor.ErrInverseNotFound when gcd(a, b) != 1 and shor.ErrInvalidParameter
// when a < 0 or b < 1. Every integer is an inverse modulo 1, so Inverse(a, 1)
// is 0.
func Inverse(a, b int64) (int64, error) {
	if a < 0 || b < 1 {
		return 0, shor.Errorf("modinv.Inverse", shor.ErrInvalidParameter, "a=%d b=%d", a, b)
	}
	u, w := int64(1), a
	x, z := int64(0), b
	for w != 0 {
		if w < z {
			u, x = x, u
			w, z = z, w
		}
		q := w / z
		u -= q * x
		w -= q * z
	}
	if z != 1 {
		return 0, shor.Errorf("modinv.Inverse", shor.ErrInverseNotFound, "gcd(%d, %d) = %d", a, b, z)
	}
	if x < 0 {
		x += b
	}
	return x, nil
}
