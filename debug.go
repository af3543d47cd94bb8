package vtshim

import (
	"flag"
	"fmt"
	"io"
	"os"
)

var (
	debugOutput     io.Writer = os.Stderr
	debugFile                 = flag.String("debugFile", "", "File to send debug info to")
	debugInitCalled           = false

	debugScan   = flag.Bool("debugScan", false, "Print scanner debugging")
	debugCmd    = flag.Bool("debugCmd", false, "Print all dispatched commands")
	debugTxt    = flag.Bool("debugTxt", false, "Print all text written to the surface")
	debugErase  = flag.Bool("debugErase", false, "Print erase debugging")
	debugCursor = flag.Bool("debugCursor", false, "Print cursor debugging")
	debugErrors = flag.Bool("debugErrors", true, "Print errors")
)

func initDebug() {
	debugInitCalled = true
	if *debugFile != "" {
		f, err := os.OpenFile(*debugFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}
		debugOutput = f
	}
}

func debugPrintln(debugFlag *bool, args ...interface{}) {
	if !debugInitCalled {
		initDebug()
	}
	if *debugFlag {
		fmt.Fprintln(debugOutput, args...)
	}
}

func debugPrintf(debugFlag *bool, f string, args ...interface{}) {
	if !debugInitCalled {
		initDebug()
	}
	if *debugFlag {
		fmt.Fprintf(debugOutput, f, args...)
	}
}
