// Package confidential implements the additive confidential accumulator
// backing player scores.
//
// Scores are exponential-ElGamal ciphertexts over Ed25519: a value m
// encrypts to (C1, C2) = (B^r, P^r * B^m) for the account's public key P
// and base point B. Ciphertexts add componentwise, so the ledger can fold
// a new score into the running total without ever seeing a plaintext.
// Only the holder of the account's private key can decrypt, and since the
// plaintext lives in the exponent, decryption walks B^m over the bounded
// score range.
//
// Submissions carry a non-interactive Sigma proof of knowledge of (r, m),
// so a ciphertext the submitter cannot open is rejected before it ever
// touches an account.
package confidential

import (
	"errors"
	"math"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/proof"

	"github.com/plinkolabs/plinko/internal/model"
)

// Errors returned by the confidential layer.
var (
	ErrInvalidProof      = errors.New("score proof verification failed")
	ErrInvalidCiphertext = errors.New("malformed score ciphertext")
	ErrInvalidPublicKey  = errors.New("malformed score public key")
	ErrValueOutOfRange   = errors.New("decrypted value exceeds maximum score")
)

// MaxScore bounds the plaintext range a decryption will search. A single
// drop pays out at most a few thousand points, so the accumulator stays
// far below this for any realistic number of plays.
const MaxScore = 1 << 21

// proofProtocol is the domain separator for score submission proofs.
const proofProtocol = "plinko/score-submission/v1"

var suite = edwards25519.NewBlakeSHA256Ed25519()

// KeyPair holds an account's score decryption keys. The private scalar
// never leaves the client adapter; the ledger only ever sees the public
// point.
type KeyPair struct {
	Private kyber.Scalar
	Public  kyber.Point
}

// NewKeyPair generates a fresh score keypair.
func NewKeyPair() *KeyPair {
	private := suite.Scalar().Pick(suite.RandomStream())
	return &KeyPair{
		Private: private,
		Public:  suite.Point().Mul(private, nil),
	}
}

// MarshalPrivateKey serializes the private scalar for at-rest storage.
func (k *KeyPair) MarshalPrivateKey() ([]byte, error) {
	return k.Private.MarshalBinary()
}

// KeyPairFromPrivate reconstructs a keypair from a serialized private
// scalar.
func KeyPairFromPrivate(b []byte) (*KeyPair, error) {
	private := suite.Scalar()
	if err := private.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &KeyPair{
		Private: private,
		Public:  suite.Point().Mul(private, nil),
	}, nil
}

// Ciphertext is an ElGamal encryption of a score value.
type Ciphertext struct {
	C1 kyber.Point
	C2 kyber.Point
}

// Marshal serializes the ciphertext into the ledger's opaque score form.
func (c Ciphertext) Marshal() (model.ScoreCiphertext, error) {
	c1, err := c.C1.MarshalBinary()
	if err != nil {
		return model.ScoreCiphertext{}, err
	}
	c2, err := c.C2.MarshalBinary()
	if err != nil {
		return model.ScoreCiphertext{}, err
	}
	return model.ScoreCiphertext{C1: c1, C2: c2}, nil
}

// Unmarshal parses an opaque score back into group points.
func Unmarshal(s model.ScoreCiphertext) (Ciphertext, error) {
	c1 := suite.Point()
	if err := c1.UnmarshalBinary(s.C1); err != nil {
		return Ciphertext{}, ErrInvalidCiphertext
	}
	c2 := suite.Point()
	if err := c2.UnmarshalBinary(s.C2); err != nil {
		return Ciphertext{}, ErrInvalidCiphertext
	}
	return Ciphertext{C1: c1, C2: c2}, nil
}

// MarshalPublicKey serializes a score public key.
func MarshalPublicKey(p kyber.Point) ([]byte, error) {
	return p.MarshalBinary()
}

// ParsePublicKey parses a serialized score public key.
func ParsePublicKey(b []byte) (kyber.Point, error) {
	p := suite.Point()
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, ErrInvalidPublicKey
	}
	return p, nil
}

// Encrypt encrypts value under the given public key and produces the
// submission proof tying the ciphertext to a known plaintext.
func Encrypt(public kyber.Point, value uint64) (Ciphertext, []byte, error) {
	r := suite.Scalar().Pick(suite.RandomStream())
	m := suite.Scalar().SetInt64(int64(value))

	c1 := suite.Point().Mul(r, nil)
	c2 := suite.Point().Add(
		suite.Point().Mul(r, public),
		suite.Point().Mul(m, nil),
	)
	ct := Ciphertext{C1: c1, C2: c2}

	prover := submissionPredicate().Prover(
		suite,
		map[string]kyber.Scalar{"r": r, "m": m},
		statementPoints(public, ct),
		nil,
	)
	proofData, err := proof.HashProve(suite, proofProtocol, prover)
	if err != nil {
		return Ciphertext{}, nil, err
	}

	return ct, proofData, nil
}

// Verify checks the submission proof for a ciphertext under the given
// public key. A failed check is reported as ErrInvalidProof.
func Verify(public kyber.Point, ct Ciphertext, proofData []byte) error {
	verifier := submissionPredicate().Verifier(suite, statementPoints(public, ct))
	if err := proof.HashVerify(suite, proofProtocol, verifier, proofData); err != nil {
		return ErrInvalidProof
	}
	return nil
}

// Add homomorphically combines two ciphertexts: the result decrypts to
// the sum of the two plaintexts.
func Add(a, b Ciphertext) Ciphertext {
	return Ciphertext{
		C1: suite.Point().Add(a.C1, b.C1),
		C2: suite.Point().Add(a.C2, b.C2),
	}
}

// Decrypt recovers the accumulated value with the account's private key.
// The plaintext lives in the exponent, so recovery solves a discrete log
// over the bounded score range.
func Decrypt(private kyber.Scalar, ct Ciphertext) (uint64, error) {
	// M = C2 - x*C1 = B^m
	shared := suite.Point().Mul(private, ct.C1)
	target := suite.Point().Sub(ct.C2, shared)
	return boundedLog(target)
}

// boundedLog finds m <= MaxScore with B^m equal to target using
// baby-step giant-step, keeping decryption at ~2*sqrt(MaxScore) group
// encodings instead of a linear walk.
func boundedLog(target kyber.Point) (uint64, error) {
	steps := uint64(math.Ceil(math.Sqrt(float64(MaxScore + 1))))

	base := suite.Point().Base()
	baby := make(map[string]uint64, steps)
	cur := suite.Point().Null()
	for j := uint64(0); j < steps; j++ {
		b, err := cur.MarshalBinary()
		if err != nil {
			return 0, err
		}
		baby[string(b)] = j
		cur.Add(cur, base)
	}

	giant := suite.Point().Mul(suite.Scalar().SetInt64(int64(steps)), nil)
	giant.Neg(giant)

	walk := target.Clone()
	for i := uint64(0); i <= steps; i++ {
		b, err := walk.MarshalBinary()
		if err != nil {
			return 0, err
		}
		if j, ok := baby[string(b)]; ok {
			v := i*steps + j
			if v > MaxScore {
				break
			}
			return v, nil
		}
		walk.Add(walk, giant)
	}
	return 0, ErrValueOutOfRange
}

// submissionPredicate states that the submitter knows (r, m) with
// C1 = B^r and C2 = P^r * B^m, i.e. a valid opening of the ciphertext.
func submissionPredicate() proof.Predicate {
	return proof.And(
		proof.Rep("C1", "r", "B"),
		proof.Rep("C2", "r", "P", "m", "B"),
	)
}

func statementPoints(public kyber.Point, ct Ciphertext) map[string]kyber.Point {
	return map[string]kyber.Point{
		"B":  suite.Point().Base(),
		"P":  public,
		"C1": ct.C1,
		"C2": ct.C2,
	}
}
