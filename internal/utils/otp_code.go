package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/yukikurage/community-service-hub/internal/constants"
)

// GenerateOTPCode returns a uniformly random six-digit code in
// [constants.OTPCodeMin, constants.OTPCodeMax].
func GenerateOTPCode() (int, error) {
	span := big.NewInt(int64(constants.OTPCodeMax - constants.OTPCodeMin + 1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return constants.OTPCodeMin + int(n.Int64()), nil
}
