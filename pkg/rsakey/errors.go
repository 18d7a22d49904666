package rsakey

import "errors"

var (
	ErrInvalidKey         = errors.New("rsakey: invalid public key")
	ErrInvalidMaterial    = errors.New("rsakey: invalid key material")
	ErrUnsupportedKeyType = errors.New("rsakey: unsupported key type")
	ErrNoPEMBlock         = errors.New("rsakey: no PEM block found")
)
