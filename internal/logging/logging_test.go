package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/collaborators-api/internal/logging"
)

func TestNewWithOutputJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithOutput("debug", "json", &buf)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("user_id", 7).Info("import finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "import finished", entry["msg"])
	require.EqualValues(t, 7, entry["user_id"])
}

func TestNewWithOutputFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger := logging.NewWithOutput("loud", "text", &bytes.Buffer{})
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
