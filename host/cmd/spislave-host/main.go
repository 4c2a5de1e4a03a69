package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"spislave/bench"
	"spislave/core"
	"spislave/host/replay"
	"spislave/host/serial"
	"spislave/protocol"
)

var (
	device     = flag.String("device", "", "Serial device of a pin-capture probe (e.g. /dev/ttyACM0)")
	baud       = flag.Int("baud", 115200, "Baud rate for the capture probe")
	replayFile = flag.String("replay", "", "Replay a capture file and exit")
	halfPeriod = flag.Int("period", bench.DefaultHalfPeriod, "SCLK half period in peripheral ticks for generated transactions")
	verbose    = flag.Bool("verbose", false, "Report every decoded frame, not just register writes")
)

func main() {
	flag.Parse()

	dev := core.New()
	master := bench.NewMaster(dev)
	master.HalfPeriod = *halfPeriod

	if *replayFile != "" {
		if err := replayFromFile(dev, *replayFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printRegs(dev)
		return
	}

	if *device != "" {
		if err := replayFromProbe(dev, *device, *baud); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printRegs(dev)
		return
	}

	fmt.Println("spislave-host - SPI register peripheral model")
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "quit", "exit", "q":
			return

		case "help", "?":
			printHelp()

		case "write", "w":
			if len(parts) != 3 {
				fmt.Println("usage: write <addr> <data>")
				continue
			}
			addr, err1 := parseByte(parts[1])
			data, err2 := parseByte(parts[2])
			if err1 != nil || err2 != nil {
				fmt.Println("addr and data must be 8-bit numbers (0x.. accepted)")
				continue
			}
			master.WriteRegister(addr, data)
			reportFrame(dev, *verbose)

		case "read", "r":
			if len(parts) != 2 {
				fmt.Println("usage: read <addr>")
				continue
			}
			addr, err := parseByte(parts[1])
			if err != nil {
				fmt.Println("addr must be an 8-bit number (0x.. accepted)")
				continue
			}
			// Drive a read-type frame for fidelity (the slave treats it
			// as a no-op), then report the host-side register value.
			master.SendFrame(protocol.Frame{Addr: addr})
			if value, ok := dev.ReadRegister(addr); ok {
				name, _ := core.RegisterName(addr)
				fmt.Printf("%s (0x%02x) = 0x%02x\n", name, addr, value)
			} else {
				fmt.Printf("0x%02x: unmapped address\n", addr)
			}

		case "regs":
			printRegs(dev)

		case "frame":
			fmt.Println(dev.LastFrame())

		case "reset":
			dev.Reset()
			fmt.Println("Peripheral reset")

		case "replay":
			if len(parts) != 2 {
				fmt.Println("usage: replay <file>")
				continue
			}
			if err := replayFromFile(dev, parts[1]); err != nil {
				fmt.Printf("replay failed: %v\n", err)
			}

		default:
			fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

// replayFromFile streams a capture file into the model.
func replayFromFile(dev *core.Peripheral, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer f.Close()

	runner := replay.New(dev)
	err = runner.Run(f, printWrite)
	fmt.Printf("Replayed %d ticks from %s\n", runner.Tick(), path)
	return err
}

// replayFromProbe streams samples from a serial capture probe until the
// port reports an error or EOF.
func replayFromProbe(dev *core.Peripheral, device string, baud int) error {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud

	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	fmt.Printf("Streaming samples from %s...\n", device)
	runner := replay.New(dev)
	return runner.Run(port, printWrite)
}

func printWrite(ev replay.WriteEvent) {
	fmt.Printf("tick %d: %s (0x%02x) <- 0x%02x\n", ev.Tick, ev.Name, ev.Addr, ev.Data)
}

func reportFrame(dev *core.Peripheral, verbose bool) {
	if verbose {
		fmt.Println(dev.LastFrame())
	}
}

func printRegs(dev *core.Peripheral) {
	data, err := dev.Dictionary().JSON()
	if err != nil {
		fmt.Printf("failed to build register map: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  write <addr> <data> - Drive a write frame (e.g. write 0x02 0xAA)")
	fmt.Println("  read <addr>         - Drive a read frame and show the register value")
	fmt.Println("  regs                - Print the register map as JSON")
	fmt.Println("  frame               - Show the last decoded frame")
	fmt.Println("  reset               - Reset the peripheral")
	fmt.Println("  replay <file>       - Replay a pin-capture file")
	fmt.Println("  help                - Show this help")
	fmt.Println("  quit                - Exit")
}
