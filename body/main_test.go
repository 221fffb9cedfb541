package body_test

import (
	"log/slog"
	"os"
	"testing"

	"go.uber.org/goleak"

	"github.com/ghettovoice/sipwire/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	switch {
	case os.Getenv("SIPWIRE_TEST_LOG") == "dev":
		return log.Dev
	case testing.Verbose():
		return log.Def
	default:
		return log.Noop
	}
}
