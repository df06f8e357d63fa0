package crypto

import "golang.org/x/crypto/bcrypt"

// bcrypt embeds a fresh random salt in every digest, so two hashes of the
// same plaintext never match byte-for-byte.
const hashCost = bcrypt.DefaultCost

// HashPassword derives a salted bcrypt digest from plaintext.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), hashCost)
}

// VerifyPassword reports whether plaintext matches the stored digest. The
// comparison is constant time; a malformed digest verifies as false rather
// than failing loudly.
func VerifyPassword(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
