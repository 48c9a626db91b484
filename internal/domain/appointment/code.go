package appointment

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	CodeLength          = 6
	MaxCodeAttempts     = 10
	confirmationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeSource produces candidate confirmation codes.
type CodeSource func() (string, error)

func RandomCode() (string, error) {
	buf := make([]byte, CodeLength)
	limit := big.NewInt(int64(len(confirmationCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = confirmationCharset[n.Int64()]
	}
	return string(buf), nil
}

// GenerateUniqueCode draws codes until exists reports a free one.
func GenerateUniqueCode(
	ctx context.Context,
	next CodeSource,
	exists func(ctx context.Context, code string) (bool, error),
) (string, error) {
	if next == nil {
		next = RandomCode
	}

	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code, err := next()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", httperr.Persistence("check confirmation code", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", httperr.New(
		httperr.KindCodeExhausted,
		"code_generation_exhausted",
		"Could not allocate a confirmation code, try again.",
	)
}

func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
