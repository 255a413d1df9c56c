package impl

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

var codeRange = big.NewInt(900000)

// newVerifyCode returns a uniformly random six digit code in [100000, 999999].
func newVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
