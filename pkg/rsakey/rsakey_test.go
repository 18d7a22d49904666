package rsakey_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

func privateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		var err error
		testKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
	})
	return testKey
}

func TestPrepare(t *testing.T) {
	t.Parallel()
	pub := &privateKey(t).PublicKey

	key, err := rsakey.Prepare(pub)
	require.NoError(t, err)

	assert.Equal(t, pub.E, key.E())
	assert.Equal(t, 64, key.FixedPointLength())
	assert.Len(t, key.N(), 64)
	assert.Len(t, key.NInverse(), 64)
	assert.Equal(t, 256, key.Size())
	assert.Equal(t, 0, pub.N.Cmp(key.Modulus()))

	// n * n' + 1 must vanish modulo R.
	r := new(big.Int).Lsh(big.NewInt(1), 64*32)
	check := new(big.Int).Mul(key.Modulus(), key.MontgomeryInverse())
	check.Add(check, big.NewInt(1)).Mod(check, r)
	assert.Equal(t, 0, check.Sign())

	// Least significant word first.
	low := new(big.Int).And(pub.N, big.NewInt(0xffffffff))
	assert.Equal(t, uint32(low.Uint64()), key.N()[0])
}

func TestPrepare_Invalid(t *testing.T) {
	t.Parallel()

	_, err := rsakey.Prepare(nil)
	assert.ErrorIs(t, err, rsakey.ErrInvalidKey)

	_, err = rsakey.PrepareModulus(big.NewInt(10), 3)
	assert.ErrorIs(t, err, rsakey.ErrInvalidKey, "even modulus")

	_, err = rsakey.PrepareModulus(big.NewInt(-7), 3)
	assert.ErrorIs(t, err, rsakey.ErrInvalidKey, "negative modulus")

	_, err = rsakey.PrepareModulus(big.NewInt(3233), 1)
	assert.ErrorIs(t, err, rsakey.ErrInvalidKey, "exponent too small")
}

func TestFromMontgomery(t *testing.T) {
	t.Parallel()

	prepared, err := rsakey.Prepare(&privateKey(t).PublicKey)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		key, err := rsakey.FromMontgomery(prepared.E(), prepared.N(), prepared.NInverse(), prepared.FixedPointLength())
		require.NoError(t, err)
		assert.True(t, key.Equal(prepared))
	})

	t.Run("inputs are copied", func(t *testing.T) {
		t.Parallel()
		n := prepared.N()
		key, err := rsakey.FromMontgomery(prepared.E(), n, prepared.NInverse(), prepared.FixedPointLength())
		require.NoError(t, err)
		n[0] ^= 0xff
		assert.True(t, key.Equal(prepared))
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := rsakey.FromMontgomery(prepared.E(), prepared.N(), prepared.NInverse()[:10], prepared.FixedPointLength())
		assert.ErrorIs(t, err, rsakey.ErrInvalidKey)

		_, err = rsakey.FromMontgomery(prepared.E(), prepared.N(), prepared.NInverse(), 0)
		assert.ErrorIs(t, err, rsakey.ErrInvalidKey)
	})

	t.Run("wrong inverse", func(t *testing.T) {
		t.Parallel()
		inv := prepared.NInverse()
		inv[3]++
		_, err := rsakey.FromMontgomery(prepared.E(), prepared.N(), inv, prepared.FixedPointLength())
		assert.ErrorIs(t, err, rsakey.ErrInvalidKey)
	})
}

func TestMaterialYAML(t *testing.T) {
	t.Parallel()

	key, err := rsakey.Prepare(&privateKey(t).PublicKey)
	require.NoError(t, err)

	out, err := rsakey.MarshalMaterialYAML(key.Material())
	require.NoError(t, err)
	assert.Contains(t, string(out), "fixed_point_length: 64")

	path := filepath.Join(t.TempDir(), "key.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	loaded, err := rsakey.LoadMaterialFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(key))

	_, err = rsakey.ParseMaterialYAML([]byte("e: [not an int"))
	assert.ErrorIs(t, err, rsakey.ErrInvalidMaterial)

	_, err = rsakey.LoadMaterialFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParsePublicKeyPEM(t *testing.T) {
	t.Parallel()
	priv := privateKey(t)
	pub := &priv.PublicKey

	pkixDER, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	certDER, err := x509.CreateCertificate(rand.Reader, &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "tickjwt test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}, &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "tickjwt test"},
	}, pub, priv)
	require.NoError(t, err)

	tests := []struct {
		name  string
		block *pem.Block
	}{
		{"pkix", &pem.Block{Type: "PUBLIC KEY", Bytes: pkixDER}},
		{"pkcs1", &pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(pub)}},
		{"certificate", &pem.Block{Type: "CERTIFICATE", Bytes: certDER}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := rsakey.ParsePublicKeyPEM(pem.EncodeToMemory(tt.block))
			require.NoError(t, err)
			assert.True(t, pub.Equal(got))
		})
	}
}

func TestParsePublicKeyPEM_Errors(t *testing.T) {
	t.Parallel()

	_, err := rsakey.ParsePublicKeyPEM([]byte("not pem"))
	assert.ErrorIs(t, err, rsakey.ErrNoPEMBlock)

	_, err = rsakey.ParsePublicKeyPEM(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: []byte{0x30, 0x01}}))
	assert.ErrorIs(t, err, rsakey.ErrInvalidKey)

	ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&ec.PublicKey)
	require.NoError(t, err)
	_, err = rsakey.ParsePublicKeyPEM(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	assert.ErrorIs(t, err, rsakey.ErrUnsupportedKeyType)
}

func TestPreparePEM(t *testing.T) {
	t.Parallel()
	pub := &privateKey(t).PublicKey

	data := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(pub)})
	key, err := rsakey.PreparePEM(data)
	require.NoError(t, err)
	assert.True(t, pub.Equal(key.PublicKey()))
}
