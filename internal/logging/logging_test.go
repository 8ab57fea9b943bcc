package logging_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	assert.Equal(t, logrus.ErrorLevel, logging.New(logging.Quiet).GetLevel())
	assert.Equal(t, logrus.InfoLevel, logging.New(logging.Info).GetLevel())
	assert.Equal(t, logrus.DebugLevel, logging.New(logging.Debug).GetLevel())
	assert.Equal(t, logrus.InfoLevel, logging.New(logging.Verbosity("bogus")).GetLevel())
}

func TestComponent_NilLoggerDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.Component(nil, "oracle").Info("ready")
	})
}

func TestComponent_TagsField(t *testing.T) {
	entry := logging.Component(logging.Discard(), "resolver")
	assert.Equal(t, "resolver", entry.Data["component"])
}
