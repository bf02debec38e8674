package api

import (
	"fintrack/config"
)

// SafeErrorMessage hides internal error detail from clients outside of
// debug mode.
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
