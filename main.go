package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/batpulabs/batpu-tools/assembler"
	"github.com/batpulabs/batpu-tools/checker"
	"github.com/batpulabs/batpu-tools/emulator"
	"github.com/batpulabs/batpu-tools/languageServer"
	"github.com/batpulabs/batpu-tools/util"
)

const usage = `Usage:
  batpu-tools assemble [flags] <input.as> <output.mc>
      -d, --no-default-defines   do not seed the I/O port defines
      -p, --no-print-info        do not print program size after assembling
      -t, --text-output          write binary-digit text instead of raw words
      -h, --help                 show this help
  batpu-tools run <image.mc>     assemble output or raw image, run headless
  batpu-tools playground         browser playground on port 2035
  batpu-tools languageServer [debug]
  batpu-tools check <config.json>

Running with no arguments starts the language server in TCP mode.`

func main() {
	if len(os.Args) == 1 {
		// tcp mode so the server can be remotely debugged
		languageServer.ListenAndServeTCP()
		return
	}

	switch os.Args[1] {
	case "assemble":
		runAssemble(os.Args[2:])
	case "run":
		if len(os.Args) != 3 {
			log.Fatalln(usage)
		}
		runImage(os.Args[2])
	case "playground":
		if err := emulator.RunPlayground(); err != nil {
			log.Fatalln(err)
		}
	case "languageServer":
		if len(os.Args) >= 3 && os.Args[2] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()
	case "check":
		if len(os.Args) != 3 {
			log.Fatalln(usage)
		}
		runCheck(os.Args[2])
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		log.Fatalln("Invalid arguments:", os.Args[1:], "\n"+usage)
	}
}

func runAssemble(args []string) {
	config := assembler.DefaultConfig()
	config.PrintInfo = true

	paths := []string{}
	for _, arg := range args {
		switch arg {
		case "-d", "--no-default-defines":
			config.DefaultDefines = false
		case "-p", "--no-print-info":
			config.PrintInfo = false
		case "-t", "--text-output":
			config.TextOutput = true
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if strings.HasPrefix(arg, "-") {
				log.Fatalln("Unknown flag:", arg, "\n"+usage)
			}
			paths = append(paths, arg)
		}
	}

	if len(paths) != 2 {
		log.Fatalln("Expected an input and an output path\n" + usage)
	}

	a := assembler.NewAssembler(config)
	errs := a.ParseFile(paths[0])
	if !errs.HasErrors() {
		errs = append(errs, a.AssembleToFile(paths[1])...)
	}

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if errs.HasErrors() {
		os.Exit(1)
	}
}

func runImage(path string) {
	words, err := loadImage(path)
	if err != nil {
		log.Fatalln(err)
	}

	inst := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:      words,
		RuntimeLimit: 100000000,
		RuntimeErrorCallback: func(e emulator.RuntimeException) {
			fmt.Fprintf(os.Stderr, "Runtime exception: %s\n", e.Message())
		},
		CharDisplayCallback: func(text string) {
			fmt.Println(text)
		},
		NumberDisplayCallback: func(text string) {
			if text != "" {
				fmt.Println(text)
			}
		},
	})
	inst.Emulate()
	fmt.Printf("Executed %d instructions\n", inst.ExecutedInstructions())
}

// loadImage reads an assembled program in either serialization: lines of 16
// binary digits, or raw big-endian words.
func loadImage(path string) ([]uint16, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isTextImage(b) {
		words := []uint16{}
		for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			value, err := strconv.ParseUint(line, 2, 16)
			if err != nil {
				return nil, fmt.Errorf("bad image line %q: %w", line, err)
			}
			words = append(words, uint16(value))
		}
		return words, nil
	}

	if len(b)%2 != 0 {
		return nil, fmt.Errorf("image %s has an odd byte count", path)
	}
	words := make([]uint16, len(b)/2)
	for i := range words {
		words[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	return words, nil
}

func isTextImage(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c != '0' && c != '1' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

func runCheck(configPath string) {
	report, err := checker.RunChecks(configPath)
	if err != nil {
		log.Fatalln(err)
	}

	for _, check := range report.Checks {
		fmt.Printf("[%s] %s\n", check.Status, check.Name)
	}
	fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
	if report.Failed > 0 {
		os.Exit(1)
	}
}
