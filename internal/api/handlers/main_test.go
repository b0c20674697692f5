package handlers

import (
	"os"
	"testing"

	"github.com/pranto48/lifeos-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
