package serialconsole

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"github.com/slate-integrations/ipman/internal/logging"
)

// Settings describe how to open a port. Zero values mean the console
// defaults: 9600 8N1.
type Settings struct {
	Port     string
	BaudRate int
	DataBits int
	Parity   string // none, odd, even
	StopBits string // 1, 1.5, 2
}

// BaudRates are the speeds the console UI offers.
var BaudRates = []int{9600, 19200, 38400, 57600, 115200}

func (s Settings) mode() (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: s.BaudRate,
		DataBits: s.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if mode.BaudRate == 0 {
		mode.BaudRate = 9600
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}

	switch s.Parity {
	case "", "none":
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		return nil, fmt.Errorf("unsupported parity %q", s.Parity)
	}

	switch s.StopBits {
	case "", "1":
	case "1.5":
		mode.StopBits = serial.OnePointFiveStopBits
	case "2":
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %q", s.StopBits)
	}
	return mode, nil
}

// Session is an open serial connection. A background goroutine drains
// the port into Output; the channel closes when the port does.
type Session struct {
	port     serial.Port
	settings Settings
	log      *logging.Logger

	output chan []byte

	mu     sync.Mutex
	closed bool
}

// Open connects to the port and starts the reader.
func Open(settings Settings, log *logging.Logger) (*Session, error) {
	mode, err := settings.mode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(settings.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", settings.Port, err)
	}

	s := &Session{
		port:     port,
		settings: settings,
		log:      log.WithComponent("serial"),
		output:   make(chan []byte, 64),
	}
	go s.readLoop()
	s.log.Info("serial session opened", "port", settings.Port, "baud", mode.BaudRate)
	return s, nil
}

// Output delivers data as it arrives from the device.
func (s *Session) Output() <-chan []byte {
	return s.output
}

// Settings returns what the session was opened with.
func (s *Session) Settings() Settings {
	return s.settings
}

// Send writes a command line to the device. Console equipment expects
// CRLF line endings regardless of host platform.
func (s *Session) Send(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session closed")
	}
	_, err := s.port.Write([]byte(line + "\r\n"))
	return err
}

// SendRaw writes bytes without any line-ending treatment. Used for
// control characters (break sequences, Ctrl-C).
func (s *Session) SendRaw(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session closed")
	}
	_, err := s.port.Write(data)
	return err
}

// Close shuts the port; the reader goroutine exits and Output closes.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.port.Close()
	s.log.Info("serial session closed", "port", s.settings.Port)
	return err
}

func (s *Session) readLoop() {
	defer close(s.output)

	buf := make([]byte, 1024)
	for {
		n, err := s.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.output <- chunk
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !s.isClosed() {
				s.log.Warn("serial read failed", "error", err)
			}
			return
		}
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
