/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/SSSOC-CAN/treadmill/utils"
	bg "github.com/SSSOCPaulCote/blunderguard"
	"github.com/mattn/go-colorable"
	color "github.com/mgutz/ansi"
	"github.com/rs/zerolog"
)

const (
	logFileRoot = "logfile"
	logFileExt  = "log"
	logFileName = "logfile.log"

	ErrInvalidLogLevel = bg.Error("invalid log level")
)

// subLogger is a thin-wrapper for the `zerolog.Logger` struct
type subLogger struct {
	SubLogger zerolog.Logger
	Subsystem string
}

// rotatingFileWriter writes to a log file and moves on to the next file of the rotation once maxFileSize is reached
type rotatingFileWriter struct {
	sync.Mutex
	file        *os.File
	maxFileSize int64 // bytes
	maxFiles    int64
	dir         string
}

// Write Implements the io.Writer interface
func (w *rotatingFileWriter) Write(p []byte) (int, error) {
	w.Lock()
	defer w.Unlock()
	stat, err := w.file.Stat()
	if err != nil {
		return 0, err
	}
	if w.maxFileSize > 0 && stat.Size()+int64(len(p)) >= w.maxFileSize {
		if err := w.rotate(stat.Name()); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// rotate closes the current file and opens the next one of the rotation, truncating it if it already exists
func (w *rotatingFileWriter) rotate(current string) error {
	r := regexp.MustCompile(fmt.Sprintf("^%s([0-9]+)\\.%s$", logFileRoot, logFileExt))
	var fileNum int64
	if matches := r.FindStringSubmatch(current); len(matches) > 1 {
		n, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return err
		}
		fileNum = n
	}
	newFileName := logFileName
	if fileNum < w.maxFiles-1 {
		newFileName = fmt.Sprintf("%s%v.%s", logFileRoot, fileNum+1, logFileExt)
	}
	_ = w.file.Close()
	newFile, err := os.OpenFile(filepath.Join(w.dir, newFileName), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0775)
	if err != nil {
		return err
	}
	w.file = newFile
	return nil
}

// logLevel is a mapping of log levels as strings to structs from the zerolog package
var logLevel = map[string]zerolog.Level{
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"PANIC": zerolog.PanicLevel,
	"FATAL": zerolog.FatalLevel,
	"ERROR": zerolog.ErrorLevel,
	"DEBUG": zerolog.DebugLevel,
	"TRACE": zerolog.TraceLevel,
}

// parseLogLevel returns the zerolog level for the given name. An empty name means INFO
func parseLogLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, ok := logLevel[strings.ToUpper(level)]
	if !ok {
		return zerolog.NoLevel, ErrInvalidLogLevel
	}
	return lvl, nil
}

// consoleWriter returns the colored console writer used when ConsoleOutput is set
func consoleWriter() zerolog.ConsoleWriter {
	output := zerolog.NewConsoleWriter()
	if runtime.GOOS == "windows" {
		output.Out = colorable.NewColorableStdout()
	} else {
		output.Out = os.Stderr
	}
	output.FormatLevel = func(i interface{}) string {
		x := fmt.Sprintf("%v", i)
		var msg string
		switch x {
		case "info":
			msg = color.Color(strings.ToUpper("["+x+"]"), "green")
		case "panic", "fatal", "error":
			msg = color.Color(strings.ToUpper("["+x+"]"), "red")
		case "warn", "debug":
			msg = color.Color(strings.ToUpper("["+x+"]"), "yellow")
		case "trace":
			msg = color.Color(strings.ToUpper("["+x+"]"), "magenta")
		default:
			msg = strings.ToUpper("[" + x + "]")
		}
		return msg + "\t"
	}
	return output
}

// InitLogger creates a new instance of the `zerolog.Logger` type. If `ConsoleOutput` is true, it will output the logs to the console as well as the logfile
func InitLogger(config *Config) (zerolog.Logger, error) {
	lvl, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}
	if config.DefaultLogDir && !utils.FileExists(config.LogFileDir) {
		if err := os.MkdirAll(config.LogFileDir, 0775); err != nil {
			return zerolog.Logger{}, err
		}
	}
	logFile, err := os.OpenFile(filepath.Join(config.LogFileDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0775)
	if err != nil {
		return zerolog.Logger{}, err
	}
	fileWriter := &rotatingFileWriter{
		file:        logFile,
		maxFileSize: config.MaxLogFileSize * 1000000, // converting to Bytes
		maxFiles:    config.MaxLogFiles,
		dir:         config.LogFileDir,
	}
	var logger zerolog.Logger
	if config.ConsoleOutput {
		multi := zerolog.MultiLevelWriter(consoleWriter(), fileWriter)
		logger = zerolog.New(multi).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(fileWriter).With().Timestamp().Logger()
	}
	return logger.Level(lvl), nil
}

// NewSubLogger takes a `zerolog.Logger` and string for the name of the subsystem and creates a `subLogger` for this subsystem
func NewSubLogger(l *zerolog.Logger, subsystem string) *subLogger {
	sub := l.With().Str("subsystem", subsystem).Logger()
	s := subLogger{
		SubLogger: sub,
		Subsystem: subsystem,
	}
	return &s
}
