package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/slate-integrations/ipman/internal/serialconsole"
)

// RunSerialList prints discovered serial ports.
func RunSerialList() error {
	ports, err := serialconsole.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p.Label())
	}
	return nil
}

// RunSerial opens an interactive serial session: stdin lines go to the
// device with CRLF endings, device output streams to stdout. Ctrl-D (or
// closing stdin) ends the session.
func RunSerial(configPath string, settings serialconsole.Settings) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if settings.Port == "" {
		return fmt.Errorf("a port is required (see: ipman serial --list)")
	}

	session, err := serialconsole.Open(settings, app.Log)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Printf("Connected to %s at %d baud. Ctrl-D to exit.\n",
		settings.Port, effectiveBaud(settings))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for chunk := range session.Output() {
			os.Stdout.Write(chunk)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := session.Send(scanner.Text()); err != nil {
			return err
		}
	}

	session.Close()
	<-done
	return scanner.Err()
}

func effectiveBaud(s serialconsole.Settings) int {
	if s.BaudRate > 0 {
		return s.BaudRate
	}
	return 9600
}
