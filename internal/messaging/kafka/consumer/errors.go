package consumer

import (
	"errors"
	"fmt"
)

var errSkip = errors.New("skip message")

func skip(reason string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", errSkip, reason)
	}
	return fmt.Errorf("%w: %s: %v", errSkip, reason, err)
}

func isSkip(err error) bool {
	return errors.Is(err, errSkip)
}
