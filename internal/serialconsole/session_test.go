package serialconsole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bug.st/serial"
)

func TestSettingsDefaults(t *testing.T) {
	mode, err := Settings{Port: "COM3"}.mode()
	require.NoError(t, err)
	assert.Equal(t, 9600, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
}

func TestSettingsMapping(t *testing.T) {
	mode, err := Settings{
		Port:     "COM3",
		BaudRate: 115200,
		DataBits: 7,
		Parity:   "even",
		StopBits: "2",
	}.mode()
	require.NoError(t, err)
	assert.Equal(t, 115200, mode.BaudRate)
	assert.Equal(t, 7, mode.DataBits)
	assert.Equal(t, serial.EvenParity, mode.Parity)
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
}

func TestSettingsRejectsUnknownParity(t *testing.T) {
	_, err := Settings{Port: "COM3", Parity: "mark"}.mode()
	assert.Error(t, err)
}

func TestSettingsRejectsUnknownStopBits(t *testing.T) {
	_, err := Settings{Port: "COM3", StopBits: "3"}.mode()
	assert.Error(t, err)
}

func TestPortLabel(t *testing.T) {
	assert.Equal(t, "COM3", PortInfo{Name: "COM3"}.Label())
	assert.Equal(t, "COM4 (USB Serial Device)", PortInfo{Name: "COM4", Product: "USB Serial Device"}.Label())
}
