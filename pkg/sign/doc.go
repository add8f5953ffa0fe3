// Package sign provides the signing interfaces used to authorize requests.
//
// The interfaces keep private key material out of reach of callers: a Signer
// only signs and reports its public key. The ledger uses ed25519 keys, and
// the address of a key is its blake2b-256 digest behind a version byte.
//
// Usage
//
//	seed, err := sign.ParseSeed(os.Getenv("DOODLE_SEED"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	signer := sign.NewED25519SignerFromSeed(seed, 0)
//
//	hash := codec.HashData(payload)
//	signature, err := signer.Sign(hash[:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Address:", signer.PublicKey().Address())
package sign
