package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of a print job.
var ProgressLogger = log.New(os.Stdout, "printer.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal event, like a missing
// glyph replaced by the replacement costume.
var WarningLogger = log.New(os.Stdout, "printer.warning: ", log.Lmsgprefix)
