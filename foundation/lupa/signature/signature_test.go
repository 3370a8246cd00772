package signature_test

import (
	"testing"

	"github.com/ardanlabs/lupa/foundation/lupa/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

type testOp struct {
	Kind  string `json:"kind"`
	Value uint64 `json:"value"`
}

func Test_Signing(t *testing.T) {
	t.Log("Given the need to sign operations and recover the signing account.")
	{
		key, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		address := crypto.PubkeyToAddress(key.PublicKey).String()

		t.Logf("\tTest 0:\tWhen signing and recovering an operation.")
		{
			op := testOp{Kind: "reveal", Value: 5}

			v, r, s, err := signature.Sign(op, key)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign the operation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to sign the operation.", success)

			if err := signature.VerifySignature(v, r, s); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould produce a verifiable signature: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould produce a verifiable signature.", success)

			recovered, err := signature.FromAddress(op, v, r, s)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to recover the address: %v", failed, err)
			}
			if recovered != address {
				t.Fatalf("\t%s\tTest 0:\tShould recover the signing address, got %s want %s.", failed, recovered, address)
			}
			t.Logf("\t%s\tTest 0:\tShould recover the signing address.", success)
		}

		t.Logf("\tTest 1:\tWhen the signed payload is altered.")
		{
			op := testOp{Kind: "reveal", Value: 5}

			v, r, s, err := signature.Sign(op, key)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to sign the operation: %v", failed, err)
			}

			op.Value = 6
			recovered, err := signature.FromAddress(op, v, r, s)
			if err == nil && recovered == address {
				t.Fatalf("\t%s\tTest 1:\tShould not recover the signer for altered data.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not recover the signer for altered data.", success)
		}

		t.Logf("\tTest 2:\tWhen the recovery id is outside the service range.")
		{
			v, r, s, err := signature.Sign(testOp{Kind: "bid"}, key)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to sign the operation: %v", failed, err)
			}

			v = v.Add(v, v)
			if err := signature.VerifySignature(v, r, s); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject a foreign recovery id.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a foreign recovery id.", success)
		}
	}
}

func Test_SignatureBytes(t *testing.T) {
	t.Log("Given the need to round-trip a signature through its byte form.")
	{
		key, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}

		v, r, s, err := signature.Sign(testOp{Kind: "withdraw"}, key)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the operation: %v", failed, err)
		}

		sig := signature.ToSignatureBytes(v, r, s)
		if len(sig) != crypto.SignatureLength {
			t.Fatalf("\t%s\tShould produce %d signature bytes, got %d.", failed, crypto.SignatureLength, len(sig))
		}
		if sig[64] != 0 && sig[64] != 1 {
			t.Fatalf("\t%s\tShould strip the service id from the recovery byte, got %d.", failed, sig[64])
		}
		t.Logf("\t%s\tShould strip the service id from the recovery byte.", success)

		str := signature.SignatureString(v, r, s)
		if len(str) != 2+2*crypto.SignatureLength {
			t.Fatalf("\t%s\tShould hex encode the full signature, got length %d.", failed, len(str))
		}
		t.Logf("\t%s\tShould hex encode the full signature.", success)
	}
}
